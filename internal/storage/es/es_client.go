package es

import (
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
)

type ClientConfig struct {
	Addresses   []string
	IndexPrefix string
	Username    string
	Password    string
}

func newClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
	}

	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	return elasticsearch.NewTypedClient(cfg)
}

// indexName maps a collection to its index. Index names must be lowercase.
func (c ClientConfig) indexName(collection string) string {
	name := strings.ToLower(collection)
	if c.IndexPrefix == "" {
		return name
	}
	return strings.ToLower(c.IndexPrefix) + "-" + name
}
