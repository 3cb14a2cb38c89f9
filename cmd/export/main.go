// export descarga el listado de notas de crédito del API de negocio en PDF o Excel
// y lo guarda con la fecha en el nombre.
//
// Uso: go run ./cmd/export [--format pdf|excel] [--search texto] [--filter clave=valor ...]
// Toma API_BASE_URL, API_TOKEN y EXPORT_DIR de la configuración.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/backoffice-console/internal/application/dto"
	"github.com/jhoicas/backoffice-console/internal/application/store"
	"github.com/jhoicas/backoffice-console/internal/infrastructure/restapi"
	"github.com/jhoicas/backoffice-console/pkg/config"
	"github.com/jhoicas/backoffice-console/pkg/format"
	"github.com/jhoicas/backoffice-console/pkg/logger"
)

var extensions = map[string]string{
	dto.ExportPDF:   "pdf",
	dto.ExportExcel: "xlsx",
}

// filters acumula --filter clave=valor.
type filters map[string]string

func (f filters) String() string { return fmt.Sprint(map[string]string(f)) }

func (f filters) Set(v string) error {
	k, val, ok := strings.Cut(v, "=")
	if !ok || k == "" {
		return fmt.Errorf("filtro inválido %q (clave=valor)", v)
	}
	f[k] = val
	return nil
}

func main() {
	formatFlag := flag.String("format", dto.ExportPDF, "pdf | excel")
	search := flag.String("search", "", "texto de búsqueda")
	extra := filters{}
	flag.Var(extra, "filter", "filtro clave=valor (repetible)")
	flag.Parse()

	ext, ok := extensions[*formatFlag]
	if !ok {
		fmt.Fprintf(os.Stderr, "Formato no soportado: %s (pdf | excel)\n", *formatFlag)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.API.Token == "" {
		fmt.Fprintln(os.Stderr, "API_TOKEN es requerido")
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	client := restapi.NewClient(restapi.Options{
		BaseURL: cfg.API.BaseURL,
		Token:   cfg.API.Token,
		Timeout: cfg.API.Timeout,
		Logger:  log,
	})
	notes := store.NewCreditNoteStore(restapi.NewCreditNoteAPI(client), log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.API.Timeout)
	defer cancel()

	params := dto.ListParams{Search: *search, PerPage: cfg.API.PerPage, Filters: extra}
	if st := notes.FetchList(ctx, params); st.Error != "" {
		fmt.Fprintf(os.Stderr, "Listado: %s\n", st.Error)
		os.Exit(1)
	}
	fmt.Printf("%d notas de crédito con los filtros indicados\n", notes.Snapshot().Meta.Total)

	blob, err := notes.Export(ctx, *formatFlag, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Exportar: %s\n", notes.Snapshot().Error)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.Export.Dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	outPath := filepath.Join(cfg.Export.Dir, format.DatedFilename("notas-de-credito", ext, time.Now()))
	if err := os.WriteFile(outPath, blob.Data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir archivo: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s (%d bytes)\n", outPath, len(blob.Data))
}
