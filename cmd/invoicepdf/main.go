// invoicepdf genera el PDF de una factura a partir de un archivo JSON.
//
// Uso: go run ./cmd/invoicepdf <input.json> <output.pdf> [--html]
// Con --html escribe el marcado en lugar del PDF (no requiere navegador).
// El motor se elige con RENDER_ENGINE (chrome por defecto, o maroto).
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/invoice-renderer/internal/application/dto"
	"github.com/jhoicas/invoice-renderer/internal/application/invoice"
	"github.com/jhoicas/invoice-renderer/internal/infrastructure/render"
	"github.com/jhoicas/invoice-renderer/pkg/config"
	"github.com/jhoicas/invoice-renderer/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 || len(args) > 3 || (len(args) == 3 && args[2] != "--html") {
		fmt.Fprintln(stderr, "Uso: invoicepdf <input.json> <output.pdf> [--html]")
		return 2
	}
	inputPath, outputPath := args[0], args[1]
	htmlOnly := len(args) == 3

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Configuración: %v\n", err)
		return 1
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: stderr})

	data, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(stderr, "Leer JSON: %v\n", err)
		return 1
	}
	in, err := dto.DecodeInvoiceRequest(data)
	if err != nil {
		fmt.Fprintf(stderr, "Decodificar JSON: %v\n", err)
		return 1
	}
	record, err := in.ToEntity()
	if err != nil {
		fmt.Fprintf(stderr, "Registro inválido: %v\n", err)
		return 1
	}

	var renderer invoice.PDFRenderer
	if !htmlOnly {
		renderer, err = render.New(cfg.Render, log.Zerolog())
		if err != nil {
			fmt.Fprintf(stderr, "Renderizador: %v\n", err)
			return 1
		}
	}
	uc := invoice.NewUseCase(invoice.SystemClock, renderer, nil)

	var out []byte
	if htmlOnly {
		inv, err := uc.Prepare(record)
		if err != nil {
			fmt.Fprintf(stderr, "Error generando HTML: %v\n", err)
			return 1
		}
		out = []byte(inv.Markup)
	} else {
		out, _, err = uc.GeneratePDF(ctx, record)
		if err != nil {
			fmt.Fprintf(stderr, "Error generando PDF: %v\n", err)
			return 1
		}
	}

	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		fmt.Fprintf(stderr, "Escribir salida: %v\n", err)
		return 1
	}
	kind := "PDF"
	if htmlOnly {
		kind = "HTML"
	}
	fmt.Fprintf(stdout, "Invoice %s generated at %s\n", kind, outputPath)
	return 0
}
