// import_leads genera un script SQL para poblar clientes y prospectos a partir
// de un export CSV legado (codificado en Windows-1252, como exportan Excel y
// varios CRMs antiguos en español).
//
// Formato esperado del CSV: nombre;email;telefono;empresa;valor
//
// Uso: go run ./cmd/import_leads <business_id> <funnel_id> [ruta/leads.csv]
// Por defecto busca leads.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_leads.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Uso: import_leads <business_id> <funnel_id> [leads.csv]")
		os.Exit(1)
	}
	businessID := os.Args[1]
	funnelID := os.Args[2]
	csvPath := "leads.csv"
	if len(os.Args) > 3 {
		csvPath = os.Args[3]
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// Los exports legados vienen en Windows-1252; decodificar a UTF-8 al leer.
	reader := csv.NewReader(transform.NewReader(f, charmap.Windows1252.NewDecoder()))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	type lead struct{ name, email, phone, company, value string }
	var leads []lead
	for i, rec := range records {
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "nombre") {
			continue // cabecera
		}
		if len(rec) < 2 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		l := lead{name: strings.TrimSpace(rec[0]), email: strings.TrimSpace(rec[1])}
		if len(rec) > 2 {
			l.phone = strings.TrimSpace(rec[2])
		}
		if len(rec) > 3 {
			l.company = strings.TrimSpace(rec[3])
		}
		l.value = "0"
		if len(rec) > 4 && strings.TrimSpace(rec[4]) != "" {
			l.value = strings.ReplaceAll(strings.TrimSpace(rec[4]), ",", ".")
		}
		leads = append(leads, l)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_leads.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Clientes y prospectos importados desde CSV legado\n")
	fmt.Fprintf(out, "-- Generado desde %s\n\n", filepath.Base(csvPath))

	for _, l := range leads {
		name := escapeSQL(l.name)
		email := escapeSQL(l.email)
		phone := escapeSQL(l.phone)
		company := escapeSQL(l.company)

		// 1. Ficha de cliente
		fmt.Fprintf(out, "INSERT INTO clients (id, business_id, name, email, phone, company, notes, created_at, updated_at)\n")
		fmt.Fprintf(out, "VALUES (gen_random_uuid(), '%s', '%s', '%s', '%s', '%s', 'importado', now(), now());\n",
			businessID, name, email, phone, company)

		// 2. Prospecto en la primera etapa del embudo, enlazado a la ficha recién creada
		fmt.Fprintf(out, "INSERT INTO prospects (id, business_id, funnel_id, stage_id, stage_name, client_id, value, notes, created_at, updated_at)\n")
		fmt.Fprintf(out, "SELECT gen_random_uuid(), '%s', '%s', s.id, s.name, c.id, %s, 'importado', now(), now()\n",
			businessID, funnelID, l.value)
		fmt.Fprintf(out, "FROM stages s, clients c WHERE s.funnel_id = '%s' AND s.id = 1 AND c.business_id = '%s' AND c.email = '%s';\n\n",
			funnelID, businessID, email)
	}

	fmt.Printf("Generado %s: %d leads\n", outPath, len(leads))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
