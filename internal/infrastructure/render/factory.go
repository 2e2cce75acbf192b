package render

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/invoice-renderer/internal/application/invoice"
	"github.com/jhoicas/invoice-renderer/internal/infrastructure/pdf"
	"github.com/jhoicas/invoice-renderer/pkg/config"
)

// New construye el renderizador indicado por RENDER_ENGINE.
func New(cfg config.RenderConfig, log zerolog.Logger) (invoice.PDFRenderer, error) {
	switch cfg.Engine {
	case "", config.EngineChrome:
		return NewChromeRenderer(ChromeOptions{
			Bin:         cfg.ChromeBin,
			Timeout:     cfg.Timeout(),
			Settle:      cfg.Settle(),
			BlockImages: cfg.BlockImages,
			NoSandbox:   cfg.NoSandbox,
		}, log), nil
	case config.EngineMaroto:
		return pdf.NewMarotoRenderer(), nil
	default:
		return nil, fmt.Errorf("render: motor %q no soportado", cfg.Engine)
	}
}
