package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

// API 키는 원본 배포와 같은 GOOGLE_API_KEY 를 우선 사용하고,
// 다른 서비스와 공유하는 GEMINI_API_KEY 를 fallback 으로 허용한다.
const (
	EnvGoogleAPIKey = "GOOGLE_API_KEY"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
)

var (
	ErrMissingAPIKey       = errors.New("GOOGLE_API_KEY (or GEMINI_API_KEY) environment variable is not set")
	ErrUnsupportedProvider = errors.New("unsupported LLM provider")
)

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
	LLM     LLMConfig     `yaml:"llm"`
	Upload  UploadConfig  `yaml:"upload"`
	Mongo   MongoConfig   `yaml:"mongo"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LLMConfig 는 분석에 사용할 모델을 정의한다.
// 텍스트 분석과 이미지 분석은 서로 다른 모델을 쓸 수 있다.
type LLMConfig struct {
	Provider    string `yaml:"provider"`
	TextModel   string `yaml:"text_model"`
	VisionModel string `yaml:"vision_model"`
}

type UploadConfig struct {
	// MaxBytes 는 업로드 파일 하나의 최대 크기이다. 0 이하면 기본값을 사용한다.
	MaxBytes int64 `yaml:"max_bytes"`
}

// MongoConfig 는 분석 호출 로그(ai_logs)를 남길 MongoDB 설정이다.
// URI 가 비어 있으면 로그 저장을 하지 않는다.
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

const (
	defaultAddr        = ":8501"
	defaultProvider    = "google"
	defaultTextModel   = "gemini-1.5-pro-latest"
	defaultVisionModel = "gemini-1.5-flash-latest"
	defaultMaxBytes    = 20 << 20
	defaultMongoDBName = "law4you"
)

// Load reads .env and config.yaml from dir. A missing .env is not an error.
func Load(dir string) (*AppConfig, error) {
	_ = godotenv.Load(filepath.Join(dir, ENV_FILE))

	data, err := os.ReadFile(filepath.Join(dir, CONFIG_FILE))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", CONFIG_FILE, err)
	}
	return Parse(data)
}

// Parse decodes yaml config and fills defaults.
func Parse(data []byte) (*AppConfig, error) {
	var c AppConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", CONFIG_FILE, err)
	}
	c.applyDefaults()
	return &c, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = defaultProvider
	}
	if c.LLM.TextModel == "" {
		c.LLM.TextModel = defaultTextModel
	}
	if c.LLM.VisionModel == "" {
		c.LLM.VisionModel = defaultVisionModel
	}
	if c.Upload.MaxBytes <= 0 {
		c.Upload.MaxBytes = defaultMaxBytes
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = defaultMongoDBName
	}
}

// APIKey 는 환경변수에서 Gemini 인증 키를 읽는다.
func (c *AppConfig) APIKey() string {
	if key := strings.TrimSpace(os.Getenv(EnvGoogleAPIKey)); key != "" {
		return key
	}
	return strings.TrimSpace(os.Getenv(EnvGeminiAPIKey))
}

// Validate 는 서버 기동 전에 반드시 필요한 설정을 검사한다.
// 실패하면 프로세스를 시작하지 않는다.
func (c *AppConfig) Validate() error {
	if c.LLM.Provider != defaultProvider {
		return fmt.Errorf("%w: %s", ErrUnsupportedProvider, c.LLM.Provider)
	}
	if c.APIKey() == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
