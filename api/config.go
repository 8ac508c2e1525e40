package api

import (
	"strings"
	"sync"
	"time"

	"github.com/alex-pricope/coop-voting-system/logging"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StorageDynamoDB = "dynamodb"
	StorageSQLite   = "sqlite"

	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type Config struct {
	StorageConfig
	ServerConfig
	CacheConfig
	SweeperConfig
	LogLevel string
}

type StorageConfig struct {
	Driver            string
	SQLitePath        string
	DynamoEndpoint    string
	DynamoRegion      string
	TableNameMembers  string
	TableNameAgendas  string
	TableNameSessions string
	TableNameVotes    string
	TableNameCounters string
}

type ServerConfig struct {
	Port int
	Mode string
}

type CacheConfig struct {
	Driver    string
	RedisAddr string
	RedisTTL  time.Duration
}

type SweeperConfig struct {
	Enabled  bool
	Interval time.Duration
}

var settingsOnce sync.Once

// SetDefaults registers the default of every key and maps env vars like STORAGE_DRIVER
// onto storage.driver.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.level", "debug")
	v.SetDefault("storage.driver", StorageMemory)
	v.SetDefault("storage.sqlite.path", "")
	v.SetDefault("storage.dynamodb.endpoint", "")
	v.SetDefault("storage.dynamodb.region", "us-east-1")
	v.SetDefault("storage.TableNameMembers", "Members")
	v.SetDefault("storage.TableNameAgendas", "Agendas")
	v.SetDefault("storage.TableNameSessions", "Sessions")
	v.SetDefault("storage.TableNameVotes", "Votes")
	v.SetDefault("storage.TableNameCounters", "Counters")
	v.SetDefault("cache.driver", CacheMemory)
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.ttl", time.Duration(0))
	v.SetDefault("sweeper.enabled", true)
	v.SetDefault("sweeper.interval", 10*time.Second)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func ReadConfig(v *viper.Viper) *Config {
	var conf = &Config{
		StorageConfig: StorageConfig{
			Driver:            strings.ToLower(getStringOrDefault(v, "storage.driver", StorageMemory)),
			SQLitePath:        v.GetString("storage.sqlite.path"),
			DynamoEndpoint:    v.GetString("storage.dynamodb.endpoint"),
			DynamoRegion:      v.GetString("storage.dynamodb.region"),
			TableNameMembers:  v.GetString("storage.TableNameMembers"),
			TableNameAgendas:  v.GetString("storage.TableNameAgendas"),
			TableNameSessions: v.GetString("storage.TableNameSessions"),
			TableNameVotes:    v.GetString("storage.TableNameVotes"),
			TableNameCounters: v.GetString("storage.TableNameCounters"),
		},
		ServerConfig: ServerConfig{
			Port: getIntOrDefault(v, "server.port", 8080),
			Mode: getStringOrDefault(v, "server.mode", "debug"),
		},
		CacheConfig: CacheConfig{
			Driver:    strings.ToLower(getStringOrDefault(v, "cache.driver", CacheMemory)),
			RedisAddr: v.GetString("cache.redis.addr"),
			RedisTTL:  v.GetDuration("cache.redis.ttl"),
		},
		SweeperConfig: SweeperConfig{
			Enabled:  getBoolOrDefault(v, "sweeper.enabled", true),
			Interval: getDurationOrDefault(v, "sweeper.interval", 10*time.Second),
		},
		LogLevel: getStringOrDefault(v, "log.level", "debug"),
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf
}

func getIntOrDefault(v *viper.Viper, name string, def int) int {
	if v.IsSet(name) {
		logging.Log.Debugf("found '%s' in viper", name)
		return v.GetInt(name)
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getBoolOrDefault(v *viper.Viper, name string, def bool) bool {
	if v.IsSet(name) {
		logging.Log.Debugf("found '%s' in viper", name)
		return v.GetBool(name)
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getStringOrDefault(v *viper.Viper, name string, def string) string {
	if v.IsSet(name) {
		logging.Log.Debugf("found '%s' in viper", name)
		return v.GetString(name)
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getDurationOrDefault(v *viper.Viper, name string, def time.Duration) time.Duration {
	if v.IsSet(name) {
		if d := v.GetDuration(name); d > 0 {
			logging.Log.Debugf("found '%s' in viper", name)
			return d
		}
		logging.Log.Warnf("'%s' must be a positive duration! Returning default", name)
		return def
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}
