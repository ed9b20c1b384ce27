package configuration

import (
	"fmt"
	"os"
	"strconv"

	"vidnotes/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Database    Database    `json:"database"`
	RedisClient RedisClient `json:"redisClient"`
	YouTube     YouTube     `json:"youtube"`
	Limits      Limits      `json:"limits"`
}

type App struct {
	Port      int    `json:"port"`
	SecretKey string `json:"secretKey"`
}

type Database struct {
	Psql Db `json:"psql"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type YouTube struct {
	APIKey       string `json:"apiKey"`
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	RedirectURI  string `json:"redirectURI"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Limits is the free-tier quota table. Premium users are unlimited on all
// of these.
type Limits struct {
	FreeVideos        int `json:"freeVideos"`
	FreeNotesPerVideo int `json:"freeNotesPerVideo"`
	FreeTags          int `json:"freeTags"`
	FreeRefreshes     int `json:"freeRefreshes"`
}

var C Config

func init() {
	LoadConfig()
	initDatabase(&C)
	initRedis(&C)
	initYouTube(&C)
	initApp(&C)
	initLimits(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initDatabase(C *Config) {
	if C.Database.Psql.Name == "" {
		C.Database.Psql.Name = os.Getenv("DB_NAME")
	}
	if C.Database.Psql.Host == "" {
		C.Database.Psql.Host = os.Getenv("DB_HOST")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = os.Getenv("DB_PORT")
	}
	if C.Database.Psql.User == "" {
		C.Database.Psql.User = os.Getenv("DB_USER")
	}
	if C.Database.Psql.Password == "" {
		C.Database.Psql.Password = os.Getenv("DB_PASSWORD")
	}
}

func initRedis(C *Config) {
	if C.RedisClient.Host == "" {
		C.RedisClient.Host = os.Getenv("REDIS_HOST")
	}
	if C.RedisClient.Port == "" {
		C.RedisClient.Port = os.Getenv("REDIS_PORT")
	}
	if C.RedisClient.Username == "" {
		C.RedisClient.Username = os.Getenv("REDIS_USERNAME")
	}
	if C.RedisClient.Password == "" {
		C.RedisClient.Password = os.Getenv("REDIS_PASSWORD")
	}
}

func initYouTube(C *Config) {
	if C.YouTube.APIKey == "" {
		C.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if C.YouTube.ClientID == "" {
		C.YouTube.ClientID = os.Getenv("YOUTUBE_CLIENT_ID")
	}
	if C.YouTube.ClientSecret == "" {
		C.YouTube.ClientSecret = os.Getenv("YOUTUBE_CLIENT_SECRET")
	}
	if C.YouTube.AccessToken == "" {
		C.YouTube.AccessToken = os.Getenv("YOUTUBE_ACCESS_TOKEN")
	}
	if C.YouTube.RefreshToken == "" {
		C.YouTube.RefreshToken = os.Getenv("YOUTUBE_REFRESH_TOKEN")
	}
}

func initApp(C *Config) {
	if C.App.SecretKey == "" {
		C.App.SecretKey = os.Getenv("SECRET_KEY")
	}
	if C.App.Port == 0 {
		if p, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 8080
	}
}

func initLimits(C *Config) {
	if C.Limits.FreeVideos == 0 {
		C.Limits.FreeVideos = envIntOr("LIMIT_FREE_VIDEOS", 10)
	}
	if C.Limits.FreeNotesPerVideo == 0 {
		C.Limits.FreeNotesPerVideo = envIntOr("LIMIT_FREE_NOTES_PER_VIDEO", 20)
	}
	if C.Limits.FreeTags == 0 {
		C.Limits.FreeTags = envIntOr("LIMIT_FREE_TAGS", 10)
	}
	if C.Limits.FreeRefreshes == 0 {
		C.Limits.FreeRefreshes = envIntOr("LIMIT_FREE_REFRESHES", 5)
	}
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
