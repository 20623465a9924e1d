package compatibility

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"persona-match/internal/domain"
)

//go:embed affinity.yaml
var defaultAffinityYAML []byte

// AffinityTable es la tabla estática y direccional affinity[viewer][candidate] en [0,1].
// Es inmutable una vez cargada.
type AffinityTable struct {
	version string
	scores  map[domain.PersonalityType]map[domain.PersonalityType]float64
}

type affinityFile struct {
	Version  string                        `yaml:"version"`
	Affinity map[string]map[string]float64 `yaml:"affinity"`
}

// DefaultAffinityTable decodifica la tabla embebida.
func DefaultAffinityTable() (*AffinityTable, error) {
	return decodeAffinity(defaultAffinityYAML)
}

// LoadAffinityTable lee una tabla YAML completa desde r.
func LoadAffinityTable(r io.Reader) (*AffinityTable, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read affinity table: %w", err)
	}
	return decodeAffinity(raw)
}

// LoadAffinityFile carga la tabla desde path; path vacío devuelve la tabla embebida.
func LoadAffinityFile(path string) (*AffinityTable, error) {
	if path == "" {
		return DefaultAffinityTable()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open affinity table: %w", err)
	}
	defer f.Close()
	return LoadAffinityTable(f)
}

func decodeAffinity(raw []byte) (*AffinityTable, error) {
	var file affinityFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode affinity table: %w", err)
	}
	if len(file.Affinity) == 0 {
		return nil, fmt.Errorf("affinity table %q is empty", file.Version)
	}
	table := &AffinityTable{
		version: file.Version,
		scores:  make(map[domain.PersonalityType]map[domain.PersonalityType]float64, len(file.Affinity)),
	}
	for rawFrom, row := range file.Affinity {
		from, err := domain.ParseType(rawFrom)
		if err != nil {
			return nil, fmt.Errorf("affinity row %q: %w", rawFrom, err)
		}
		dst := make(map[domain.PersonalityType]float64, len(row))
		for rawTo, v := range row {
			to, err := domain.ParseType(rawTo)
			if err != nil {
				return nil, fmt.Errorf("affinity %s->%q: %w", from, rawTo, err)
			}
			if v < 0 || v > 1 {
				return nil, fmt.Errorf("affinity %s->%s out of range: %v", from, to, v)
			}
			dst[to] = v
		}
		table.scores[from] = dst
	}
	return table, nil
}

func (t *AffinityTable) Version() string { return t.version }

// Lookup devuelve la afinidad dirigida from->to y si el par existe en la tabla.
func (t *AffinityTable) Lookup(from, to domain.PersonalityType) (float64, bool) {
	if t == nil {
		return 0, false
	}
	row, ok := t.scores[from]
	if !ok {
		return 0, false
	}
	v, ok := row[to]
	return v, ok
}

// Affinity devuelve 0 para pares desconocidos; nunca falla.
func (t *AffinityTable) Affinity(from, to domain.PersonalityType) float64 {
	v, _ := t.Lookup(from, to)
	return v
}

// Missing lista los pares de los 16x16 que no están en la tabla.
func (t *AffinityTable) Missing() [][2]domain.PersonalityType {
	var missing [][2]domain.PersonalityType
	for _, from := range domain.AllTypes() {
		for _, to := range domain.AllTypes() {
			if _, ok := t.Lookup(from, to); !ok {
				missing = append(missing, [2]domain.PersonalityType{from, to})
			}
		}
	}
	return missing
}

// Asymmetries lista los pares (a,b), con a<b, donde affinity[a][b] != affinity[b][a].
func (t *AffinityTable) Asymmetries() [][2]domain.PersonalityType {
	var out [][2]domain.PersonalityType
	types := domain.AllTypes()
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for i, a := range types {
		for _, b := range types[i+1:] {
			ab, okAB := t.Lookup(a, b)
			ba, okBA := t.Lookup(b, a)
			if okAB != okBA || ab != ba {
				out = append(out, [2]domain.PersonalityType{a, b})
			}
		}
	}
	return out
}
