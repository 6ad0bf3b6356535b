package infra

import (
	"github.com/secmon-lab/bqnvd/pkg/domain/interfaces"
)

type Clients struct {
	bq   interfaces.BigQuery
	cs   interfaces.CloudStorage
	feed interfaces.NVDFeed
}

func New(options ...Option) *Clients {
	c := &Clients{}
	for _, option := range options {
		option(c)
	}

	return c
}

func (x *Clients) BigQuery() interfaces.BigQuery         { return x.bq }
func (x *Clients) CloudStorage() interfaces.CloudStorage { return x.cs }
func (x *Clients) Feed() interfaces.NVDFeed              { return x.feed }

type Option func(*Clients)

func WithBigQuery(bq interfaces.BigQuery) Option {
	return func(c *Clients) {
		c.bq = bq
	}
}

func WithCloudStorage(cs interfaces.CloudStorage) Option {
	return func(c *Clients) {
		c.cs = cs
	}
}

func WithFeed(feed interfaces.NVDFeed) Option {
	return func(c *Clients) {
		c.feed = feed
	}
}
