package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"examkit/internal/licences"
	"examkit/internal/scores"
	"examkit/internal/sheet"
)

// fixtureConfig defines the JSON config for generating an exam session.
type fixtureConfig struct {
	Name      string   `json:"name"`
	Licences  []string `json:"licences"`
	Students  int      `json:"students"`
	Questions int      `json:"questions"`
	Seed      uint64   `json:"seed"`
	// Unlisted students appear in the score export but in no licence file.
	Unlisted int `json:"unlisted"`
}

func main() {
	configPath := flag.String("config", "", "path to fixture config JSON")
	outDir := flag.String("out", "", "output directory")
	flag.Parse()
	if *configPath == "" || *outDir == "" {
		fmt.Fprintln(os.Stderr, "usage: generate_fixture --config <path> --out <dir>")
		os.Exit(2)
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := generateFixture(*outDir, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "generate fixture: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (fixtureConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fixtureConfig{}, err
	}
	var cfg fixtureConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fixtureConfig{}, err
	}
	if len(cfg.Licences) == 0 {
		return fixtureConfig{}, fmt.Errorf("config %s lists no licence", path)
	}
	if cfg.Students <= 0 {
		cfg.Students = 40
	}
	if cfg.Questions <= 0 {
		cfg.Questions = 10
	}
	return cfg, nil
}

// generateFixture writes one input set per tool: the Moodle email list, the
// licence folder and the score export.
func generateFixture(dir string, cfg fixtureConfig) error {
	licenceDir := filepath.Join(dir, "licences")
	if err := os.MkdirAll(licenceDir, 0o755); err != nil {
		return fmt.Errorf("mkdir output dir: %w", err)
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, uint64(len(cfg.Name))))

	students := make([]student, 0, cfg.Students+cfg.Unlisted)
	for i := 0; i < cfg.Students+cfg.Unlisted; i++ {
		s := student{ID: identifier(i), Email: email(cfg.Name, i)}
		if i < cfg.Students {
			s.Licence = cfg.Licences[i%len(cfg.Licences)]
		}
		students = append(students, s)
	}

	emails := [][]any{{"Numéro", "Email"}}
	for _, s := range students {
		emails = append(emails, []any{s.ID, s.Email})
	}
	if err := sheet.WriteXLSX(filepath.Join(dir, "emails.xlsx"), "Sheet1", emails); err != nil {
		return err
	}

	for _, licence := range cfg.Licences {
		rows := [][]any{{"Nom client", "Client"}}
		for i, s := range students {
			if s.Licence == licence {
				rows = append(rows, []any{fmt.Sprintf("Student %d", i+1), s.ID})
			}
		}
		if err := sheet.WriteXLSX(filepath.Join(licenceDir, licence+".xlsx"), "Sheet1", rows); err != nil {
			return err
		}
	}

	header := []string{scores.ColumnIdentifier, scores.ColumnMark}
	for q := 1; q <= cfg.Questions; q++ {
		header = append(header, fmt.Sprintf("Q%02d", q))
	}
	rows := make([][]string, 0, len(students))
	for _, s := range students {
		row := []string{fmt.Sprint(s.ID), ""}
		correct := 0
		for q := 0; q < cfg.Questions; q++ {
			answer := rng.IntN(2)
			correct += answer
			row = append(row, fmt.Sprint(answer))
		}
		row[1] = frenchDecimal(20 * float64(correct) / float64(cfg.Questions))
		rows = append(rows, row)
	}
	if err := sheet.WriteCSV(filepath.Join(dir, "notes.csv"), header, rows, ';'); err != nil {
		return err
	}
	fmt.Printf("fixture %q written to %s (%d students, roster columns %q/%q)\n",
		cfg.Name, dir, len(students), licences.ColumnNumber, licences.ColumnLicence)
	return nil
}
