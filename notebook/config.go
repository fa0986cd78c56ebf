// Package notebook generates the configuration file read by the Jupyter server
// at startup inside the notebook image.
package notebook

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
	"text/template"

	sprig "github.com/Masterminds/sprig/v3"
	"gopkg.in/yaml.v3"
)

// FileName is the name under which Jupyter looks for the configuration file.
const FileName = "jupyter_notebook_config.py"

//go:embed config.py.tmpl
var configTemplate string

var tmpl = template.Must(template.New(FileName).
	Funcs(template.FuncMap{
		"pystr":  pyString,
		"pybool": pyBool,
	}).
	Funcs(sprig.HermeticTxtFuncMap()).
	Parse(configTemplate))

// Extension is a server extension toggled on startup.
type Extension struct {
	Name    string `yaml:"name"`
	Enabled bool   `yaml:"enabled"`
}

// Config holds the options of the notebook server.
type Config struct {
	AllowRoot   bool   `yaml:"allow_root"`
	RootDir     string `yaml:"root_dir"`
	IP          string `yaml:"ip"`
	Port        int    `yaml:"port"`
	Token       string `yaml:"token"`
	Password    string `yaml:"password"`
	OpenBrowser bool   `yaml:"open_browser"`
	AllowOrigin string `yaml:"allow_origin"`

	// Websocket keep-alive settings, in milliseconds.
	WSPingInterval int `yaml:"ws_ping_interval"`
	WSPingTimeout  int `yaml:"ws_ping_timeout"`

	Extensions []Extension `yaml:"extensions"`

	// MaxBufferSize is the request size limit in bytes.
	MaxBufferSize int64 `yaml:"max_buffer_size"`
	// ShutdownNoActivityTimeout is expressed in seconds, 0 means never.
	ShutdownNoActivityTimeout int    `yaml:"shutdown_no_activity_timeout"`
	BaseURL                   string `yaml:"base_url"`
}

// Default returns the configuration used by the containerized notebook server.
func Default() Config {
	return Config{
		AllowRoot:      true,
		RootDir:        "/notebooks",
		IP:             "0.0.0.0",
		Port:           7654,
		OpenBrowser:    false,
		AllowOrigin:    "*",
		WSPingInterval: 30000,
		WSPingTimeout:  10000,
		Extensions: []Extension{
			{Name: "jupyter_nbextensions_configurator", Enabled: true},
			{Name: "jupyterlab", Enabled: true},
		},
		MaxBufferSize:             100 << 20,
		ShutdownNoActivityTimeout: 0,
		BaseURL:                   "/",
	}
}

// Load reads a YAML document and applies it on top of the default configuration.
// Options missing from the document keep their default value.
func Load(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("could not decode the notebook configuration: %w", err)
	}
	return cfg, nil
}

// AuthDisabled reports whether the server accepts connections without any credentials.
func (c Config) AuthDisabled() bool {
	return c.Token == "" && c.Password == ""
}

// Render writes the Python configuration file into w.
func (c Config) Render(w io.Writer) error {
	return tmpl.Execute(w, c)
}

// pyString quotes s as a Python string literal.
func pyString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)
	return "'" + r.Replace(s) + "'"
}

func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
