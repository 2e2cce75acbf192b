// Package render rasteriza el marcado de la factura con Chrome headless (go-rod).
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"
	"github.com/ysmood/gson"

	"github.com/jhoicas/invoice-renderer/internal/application/invoice"
)

// EngineChrome nombre del motor.
const EngineChrome = "chrome"

// Geometría de la página impresa.
const (
	viewportWidth  = 1200
	viewportHeight = 800

	a4WidthMM  = 210.0
	a4HeightMM = 297.0

	marginVerticalMM   = 15.0
	marginHorizontalMM = 10.0

	mmPerInch = 25.4
)

// ChromeOptions parámetros del render con navegador.
type ChromeOptions struct {
	Bin         string        // ruta a Chrome; vacío usa el navegador gestionado por rod
	Timeout     time.Duration // tope por factura
	Settle      time.Duration // espera tras la carga para fuentes e imágenes
	BlockImages bool
	NoSandbox   bool
}

// ChromeRenderer implementa invoice.PDFRenderer con un navegador por render.
type ChromeRenderer struct {
	opts ChromeOptions
	log  zerolog.Logger
}

var _ invoice.PDFRenderer = (*ChromeRenderer)(nil)

// NewChromeRenderer construye el renderizador.
func NewChromeRenderer(opts ChromeOptions, log zerolog.Logger) *ChromeRenderer {
	return &ChromeRenderer{opts: opts, log: log.With().Str("engine", EngineChrome).Logger()}
}

// Name implementa invoice.PDFRenderer.
func (r *ChromeRenderer) Name() string { return EngineChrome }

// RenderPDF lanza Chrome, carga el marcado e imprime A4. El navegador se
// cierra siempre, también en error.
func (r *ChromeRenderer) RenderPDF(ctx context.Context, inv *invoice.RenderedInvoice) (_ []byte, err error) {
	if inv == nil || inv.Markup == "" {
		return nil, errors.New("render: marcado vacío")
	}
	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	l := newLauncher(ctx, r.opts)
	defer l.Cleanup()
	defer l.Kill()

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("render: lanzar chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("render: conectar chrome: %w", err)
	}
	defer func() {
		if cerr := browser.Close(); cerr != nil {
			r.log.Debug().Err(cerr).Msg("cerrar navegador")
		}
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("render: abrir página: %w", err)
	}

	if r.opts.BlockImages {
		router := page.HijackRequests()
		if err := router.Add("*", proto.NetworkResourceTypeImage, func(h *rod.Hijack) {
			h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
		}); err != nil {
			return nil, fmt.Errorf("render: bloquear imágenes: %w", err)
		}
		go router.Run()
		defer func() { _ = router.Stop() }()
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("render: viewport: %w", err)
	}

	if err := page.SetDocumentContent(inv.Markup); err != nil {
		return nil, fmt.Errorf("render: cargar marcado: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("render: esperar carga: %w", err)
	}
	if err := settle(ctx, r.opts.Settle); err != nil {
		return nil, fmt.Errorf("render: espera: %w", err)
	}

	stream, err := page.PDF(PrintOptions())
	if err != nil {
		return nil, fmt.Errorf("render: imprimir pdf: %w", err)
	}
	defer stream.Close()

	out, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("render: leer pdf: %w", err)
	}
	r.log.Debug().Int("bytes", len(out)).Msg("pdf impreso")
	return out, nil
}

// PrintOptions parámetros de impresión: A4, márgenes 15 mm arriba/abajo y
// 10 mm a los lados, con fondos y sin encabezado ni pie.
func PrintOptions() *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:          gson.Num(mmToInch(a4WidthMM)),
		PaperHeight:         gson.Num(mmToInch(a4HeightMM)),
		MarginTop:           gson.Num(mmToInch(marginVerticalMM)),
		MarginBottom:        gson.Num(mmToInch(marginVerticalMM)),
		MarginLeft:          gson.Num(mmToInch(marginHorizontalMM)),
		MarginRight:         gson.Num(mmToInch(marginHorizontalMM)),
		PrintBackground:     true,
		Scale:               gson.Num(1),
		DisplayHeaderFooter: false,
		PreferCSSPageSize:   false,
	}
}

func newLauncher(ctx context.Context, opts ChromeOptions) *launcher.Launcher {
	l := launcher.New().
		Context(ctx).
		Headless(true).
		NoSandbox(opts.NoSandbox).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("disable-setuid-sandbox").
		Set("disable-accelerated-2d-canvas").
		Set("no-first-run").
		Set("no-zygote").
		Set("disable-web-security").
		Set("disable-features", "VizDisplayCompositor")
	if opts.Bin != "" {
		l = l.Bin(opts.Bin)
	}
	return l
}

func settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func mmToInch(mm float64) float64 { return mm / mmPerInch }
