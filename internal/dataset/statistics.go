package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/l1jgo/battlecore/internal/model"
)

// statsFile is the subset of the public Smogon-style monthly usage
// stats JSON this module reads (spec §6.3 "Statistics").
type statsFile struct {
	Data map[string]statsSpeciesEntry `json:"data"`
}

type statsSpeciesEntry struct {
	Abilities         map[string]float64 `json:"Abilities"`
	Items             map[string]float64 `json:"Items"`
	Spreads           map[string]float64 `json:"Spreads"` // "nature:hp/atk/def/spa/spd/spe"
	Moves             map[string]float64 `json:"Moves"`
	TeraTypes         map[string]float64 `json:"Tera Types"`
	ChecksAndCounters map[string]json.RawMessage `json:"Checks and Counters"`
	RawCount          float64             `json:"Raw count"`
}

// StatisticsProvider fetches monthly usage-statistics JSON from a
// public host, walking backward in time until a month's file exists,
// and caches it on disk by filename (spec §6.3, §5 "content-addressed
// file directory; writes expected to be rare and race-tolerant").
type StatisticsProvider struct {
	cacheDir   string
	hostTmpl   string // fmt.Sprintf(hostTmpl, "2024-01", format)
	client     *http.Client
	topN       int
	lookbackMonths int

	store *Store // not guarded: spec §4.2.6 "the statistics dataset may be fully emptied"
	raw   map[string]statsSpeciesEntry
}

// NewStatisticsProvider constructs a provider. hostTmpl must contain
// two %s verbs: year-month, then format.
func NewStatisticsProvider(cacheDir, hostTmpl string, topN int) *StatisticsProvider {
	return &StatisticsProvider{
		cacheDir:       cacheDir,
		hostTmpl:       hostTmpl,
		client:         &http.Client{Timeout: 15 * time.Second},
		topN:           topN,
		lookbackMonths: 12,
		store:          NewStore(false),
		raw:            make(map[string]statsSpeciesEntry),
	}
}

func (p *StatisticsProvider) Initialize(format string, revealedSpecies map[string]bool) error {
	data, err := p.loadMostRecentMonth(format)
	if err != nil {
		return fmt.Errorf("load statistics for %s: %w", format, err)
	}
	p.raw = data.Data
	for species, entry := range data.Data {
		p.store.Set(species, synthesizeCandidates(entry, p.topN))
	}
	return nil
}

// loadMostRecentMonth walks backward from the current month, trying
// the disk cache first and falling back to an HTTP fetch, until a
// month's file is found or lookbackMonths is exhausted.
func (p *StatisticsProvider) loadMostRecentMonth(format string) (*statsFile, error) {
	now := time.Now()
	var lastErr error
	for i := 0; i < p.lookbackMonths; i++ {
		month := now.AddDate(0, -i, 0).Format("2006-01")
		raw, err := p.loadMonth(month, format)
		if err == nil {
			var f statsFile
			if jerr := json.Unmarshal(raw, &f); jerr != nil {
				lastErr = jerr
				continue
			}
			return &f, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("no statistics found in last %d months: %w", p.lookbackMonths, lastErr)
}

func (p *StatisticsProvider) cachePath(month, format string) string {
	return filepath.Join(p.cacheDir, fmt.Sprintf("%s-%s.json", month, format))
}

func (p *StatisticsProvider) loadMonth(month, format string) ([]byte, error) {
	cachePath := p.cachePath(month, format)
	if raw, err := os.ReadFile(cachePath); err == nil {
		return raw, nil
	}

	url := fmt.Sprintf(p.hostTmpl, month, format)
	resp, err := p.client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if err := p.writeCache(cachePath, raw); err != nil {
		// A cache-write failure should never fail the fetch itself —
		// the data was obtained, caching it is best-effort.
		_ = err
	}
	return raw, nil
}

// writeCache writes raw to path atomically via a uuid-suffixed temp
// file and rename, so concurrent writers race harmlessly to
// last-writer-wins (spec §5).
func (p *StatisticsProvider) writeCache(path string, raw []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp-" + uuid.NewString()
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// synthesizeCandidates builds approximate joint candidate sets from
// the statistics backend's marginal top-N lists (ability/item/spread/
// moves are reported independently, never as joint combinations in
// the source data) by pairing the top-N of each axis. Count is the
// product of the marginal weights, scaled by raw usage.
func synthesizeCandidates(entry statsSpeciesEntry, topN int) []CandidateSet {
	abilities := topKeys(entry.Abilities, topN)
	items := topKeys(entry.Items, topN)
	spreads := topKeys(entry.Spreads, topN)
	moves := topKeys(entry.Moves, 4*topN)
	tera := topKeys(entry.TeraTypes, 1)

	var out []CandidateSet
	for _, a := range abilities {
		for _, it := range items {
			for _, sp := range spreads {
				nature, evs := parseSpread(sp)
				set := CandidateSet{
					Ability: a,
					Item:    it,
					Nature:  nature,
					EVs:     evs,
					Moves:   topStrings(moves, 4),
					Count:   int(entry.RawCount*entry.Abilities[a]*entry.Items[it]*entry.Spreads[sp]) + 1,
				}
				if len(tera) > 0 {
					set.Tera = tera[0]
				}
				out = append(out, set)
			}
		}
	}
	return out
}

func topStrings(in []string, n int) []string {
	if len(in) <= n {
		return in
	}
	return in[:n]
}

func topKeys(m map[string]float64, n int) []string {
	type kv struct {
		k string
		v float64
	}
	kvs := make([]kv, 0, len(m))
	for k, v := range m {
		kvs = append(kvs, kv{k, v})
	}
	sort.Slice(kvs, func(i, j int) bool { return kvs[i].v > kvs[j].v })
	if n > len(kvs) {
		n = len(kvs)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = kvs[i].k
	}
	return out
}

// parseSpread parses a "nature:hp/atk/def/spa/spd/spe" spread key.
func parseSpread(spread string) (string, model.StatBlock) {
	nature, evs, found := strings.Cut(spread, ":")
	if !found || nature == "" {
		return "", model.StatBlock{}
	}
	var hp, atk, def, spa, spd, spe int
	n, _ := fmt.Sscanf(evs, "%d/%d/%d/%d/%d/%d", &hp, &atk, &def, &spa, &spd, &spe)
	if n < 6 {
		return "", model.StatBlock{}
	}
	return nature, statBlockFromEVString(hp, atk, def, spa, spd, spe)
}

func (p *StatisticsProvider) PredictSet(pm *model.Pokemon) (CandidateSet, bool) {
	return p.store.Best(pm.Species)
}

func (p *StatisticsProvider) AllRemainingSets(pm *model.Pokemon) []CandidateSet {
	return p.store.Get(pm.Species)
}

func (p *StatisticsProvider) AllPossibleMoves(pm *model.Pokemon) []string {
	return p.store.AllMoves(pm.Species)
}

func (p *StatisticsProvider) AddNewPokemon(species string) {
	if _, ok := p.store.bySpecies[species]; !ok {
		p.store.Set(species, nil)
	}
}

// Store exposes the underlying candidate store; see RandomBattleProvider.Store.
func (p *StatisticsProvider) Store() *Store { return p.store }

// AllSpecies satisfies Provider.
func (p *StatisticsProvider) AllSpecies() []string { return p.store.AllSpecies() }
