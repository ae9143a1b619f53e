package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/poiesic/candidex"
	"github.com/poiesic/candidex/core"
)

// Demo profiles spanning the skill taxonomy, for local experimentation.
var profiles = []map[string]string{
	{
		"identity_key":    "https://linkedin.com/in/maria-silva",
		"name":            "maria silva",
		"headline":        "Finance Manager at BancoLux",
		"education":       "Magíster en Finanzas, Universidade de Lisboa",
		"current_company": "BancoLux",
		"location":        "Lisboa, Portugal",
	},
	{
		"identity_key":    "https://linkedin.com/in/joao-costa",
		"name":            "joão costa",
		"headline":        "Digital Marketing Lead",
		"education":       "MBA, Nova School of Business",
		"current_company": "AdVantage",
		"location":        "Porto, Portugal",
	},
	{
		"identity_key":    "https://linkedin.com/in/ana-ferreira",
		"name":            "ana ferreira",
		"headline":        "Software Engineer, backend and cloud",
		"education":       "Licenciatura em Engenharia Informática",
		"current_company": "CloudWorks",
		"location":        "Braga, Portugal",
	},
	{
		"identity_key":    "https://linkedin.com/in/rui-almeida",
		"name":            "rui almeida",
		"headline":        "Sales Director, B2B software",
		"education":       "Gestão de Empresas, ISCTE",
		"current_company": "Vendix",
		"location":        "Lisboa, Portugal",
	},
	{
		"identity_key":    "https://linkedin.com/in/beatriz-santos",
		"name":            "beatriz santos",
		"headline":        "Data Analyst, risk and analytics",
		"education":       "Mestrado em Estatística",
		"current_company": "RiskLab",
		"location":        "Coimbra, Portugal",
	},
	{
		"identity_key":    "https://linkedin.com/in/miguel-rocha",
		"name":            "miguel rocha",
		"headline":        "Human Resources Business Partner",
		"education":       "Psicologia Organizacional",
		"current_company": "TalentHub",
		"location":        "Lisboa, Portugal",
	},
	{
		"identity_key":    "https://linkedin.com/in/carla-mendes",
		"name":            "carla mendes",
		"headline":        "UX Designer, product design",
		"education":       "Design de Comunicação, FBAUL",
		"current_company": "PixelForge",
		"location":        "Porto, Portugal",
	},
	{
		"identity_key":    "https://linkedin.com/in/pedro-martins",
		"name":            "pedro martins",
		"headline":        "Supply Chain and Logistics Manager",
		"education":       "Engenharia e Gestão Industrial",
		"current_company": "MoveFast Logística",
		"location":        "Aveiro, Portugal",
	},
	{
		"identity_key":    "https://linkedin.com/in/sofia-oliveira",
		"name":            "sofia oliveira",
		"headline":        "Communications and PR Specialist",
		"education":       "Ciências da Comunicação",
		"current_company": "Mediar",
		"location":        "Lisboa, Portugal",
	},
	{
		"identity_key":    "https://linkedin.com/in/tiago-pereira",
		"name":            "tiago pereira",
		"headline":        "Project Manager, scrum and agile delivery",
		"education":       "Gestão de Projetos, Católica",
		"current_company": "DeliverOn",
		"location":        "Lisboa, Portugal",
	},
}

var (
	dbPath       = flag.String("db", "./candidates_db", "path to BadgerDB database directory")
	seedFileName = flag.String("src", "", "JSON file of candidate profiles to seed")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// loadProfiles reads candidate profiles from a JSON file.
func loadProfiles(filename string) ([]map[string]string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var rows []map[string]string
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func main() {
	engine, err := candidex.NewEngine(*dbPath)
	if err != nil {
		panic(err)
	}
	defer engine.Close()

	ctx := context.Background()

	// Determine source of seed data
	rows := profiles
	if seedFileName != nil && *seedFileName != "" {
		rows, err = loadProfiles(*seedFileName)
		if err != nil {
			panic(err)
		}
	}

	records := make([]*core.CandidateRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, core.FromMap(row))
	}

	kept, err := engine.Ingest(ctx, records)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Seeded %d candidates\n", kept)
}
