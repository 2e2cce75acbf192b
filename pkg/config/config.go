package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Motores de render soportados.
const (
	EngineChrome = "chrome"
	EngineMaroto = "maroto"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	Render RenderConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host       string
	Port       int
	CORSOrigin string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RenderConfig configuración del motor de PDF.
type RenderConfig struct {
	Engine       string // chrome | maroto
	ChromeBin    string // vacío = navegador gestionado por rod
	TimeoutSecs  int
	SettleMillis int
	BlockImages  bool
	NoSandbox    bool
}

// Timeout tope por render.
func (c RenderConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// Settle espera tras la carga de la página.
func (c RenderConfig) Settle() time.Duration {
	return time.Duration(c.SettleMillis) * time.Millisecond
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, RENDER_ENGINE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "invoice-renderer"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:       getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:       getInt(v, "HTTP_PORT", getInt(v, "PORT", 3001)),
			CORSOrigin: getString(v, "CORS_ORIGIN", getString(v, "DOMAIN", "http://localhost:3000")),
		},
		Render: RenderConfig{
			Engine:       strings.ToLower(getString(v, "RENDER_ENGINE", EngineChrome)),
			ChromeBin:    getString(v, "RENDER_CHROME_BIN", ""),
			TimeoutSecs:  getInt(v, "RENDER_TIMEOUT_SECONDS", 30),
			SettleMillis: getInt(v, "RENDER_SETTLE_MILLIS", 1000),
			BlockImages:  getBool(v, "RENDER_BLOCK_IMAGES", false),
			NoSandbox:    getBool(v, "RENDER_NO_SANDBOX", true),
		},
	}

	switch cfg.Render.Engine {
	case EngineChrome, EngineMaroto:
	default:
		return nil, fmt.Errorf("config: RENDER_ENGINE %q no soportado (chrome|maroto)", cfg.Render.Engine)
	}
	if cfg.HTTP.Port <= 0 {
		return nil, fmt.Errorf("config: HTTP_PORT inválido")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		if s, ok := v.Get(key).(string); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(s))
			if err != nil {
				return def
			}
			return b
		}
		return v.GetBool(key)
	}
	return def
}
