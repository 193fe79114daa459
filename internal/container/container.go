// Package container holds the process-wide components built in main so the
// router can wire modules without threading every dependency through.
package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-event-registration/config"
	"github.com/oksasatya/go-event-registration/internal/application"
	"github.com/oksasatya/go-event-registration/internal/interface/middleware"
	"github.com/oksasatya/go-event-registration/pkg/helpers"
)

// Rabbit and Elasticsearch stay nil when not configured.
var (
	cfg    *config.Config
	logger *logrus.Logger
	pgPool *pgxpool.Pool

	images      application.ImageStore
	rateCounter middleware.Counter
	jwtManager  *helpers.JWTManager

	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client
)

func SetConfig(c *config.Config)              { cfg = c }
func GetConfig() *config.Config               { return cfg }
func SetLogger(l *logrus.Logger)              { logger = l }
func GetLogger() *logrus.Logger               { return logger }
func SetPGPool(p *pgxpool.Pool)               { pgPool = p }
func GetPGPool() *pgxpool.Pool                { return pgPool }
func SetJWT(m *helpers.JWTManager)            { jwtManager = m }
func GetJWT() *helpers.JWTManager             { return jwtManager }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }

// SetImageStore registers where event images are written.
func SetImageStore(s application.ImageStore) { images = s }
func GetImageStore() application.ImageStore  { return images }

// SetRateCounter picks the rate-limit backend: Redis when reachable, in-process otherwise.
func SetRateCounter(c middleware.Counter) { rateCounter = c }

// GetRateCounter falls back to an in-process counter so the limiter is never skipped.
func GetRateCounter() middleware.Counter {
	if rateCounter == nil {
		rateCounter = middleware.NewMemoryCounter()
	}
	return rateCounter
}
