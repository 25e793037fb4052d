package database

import (
	"context"
	"crypto/x509"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"

	"vendorhub_back_end/internal/config"
)

// Store regroupe les connexions partagées du processus. Construit une seule
// fois dans main() puis injecté dans les composants — durée de vie = durée
// de vie du processus, pas de singleton global.
type Store struct {
	Scylla  *gocql.Session
	Redis   *redis.Client
	Elastic *elasticsearch.Client
}

// Connect ouvre toutes les connexions. ScyllaDB et Redis sont obligatoires ;
// Elasticsearch est optionnel (la recherche vendeurs est alors désactivée).
func Connect(ctx context.Context, cfg *config.Config) (*Store, error) {
	session, err := connectScylla(cfg)
	if err != nil {
		return nil, fmt.Errorf("échec initialisation ScyllaDB: %w", err)
	}

	rdb, err := connectRedis(ctx, cfg)
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("échec connexion Redis: %w", err)
	}

	es := connectElastic(cfg)

	log.Println("✅ Toutes les bases de données sont connectées")
	return &Store{Scylla: session, Redis: rdb, Elastic: es}, nil
}

// Close ferme proprement toutes les connexions
func (s *Store) Close() {
	if s.Scylla != nil {
		s.Scylla.Close()
		log.Println("🔌 Session ScyllaDB fermée")
	}
	if s.Redis != nil {
		_ = s.Redis.Close()
	}
}

// =============================================
// SCYLLA DB
// =============================================

func connectScylla(cfg *config.Config) (*gocql.Session, error) {
	cluster := gocql.NewCluster(cfg.ScyllaHosts...)
	cluster.Keyspace = cfg.ScyllaKeyspace
	cluster.Consistency = gocql.Quorum
	cluster.Timeout = 5 * time.Second
	cluster.NumConns = 20
	cluster.MaxWaitSchemaAgreement = 30 * time.Second
	cluster.ReconnectInterval = 1 * time.Second

	if cfg.ScyllaUsername != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.ScyllaUsername,
			Password: cfg.ScyllaPassword,
		}
	}

	if cfg.ScyllaSSLEnabled && cfg.ScyllaCACertPath != "" {
		caCert, err := os.ReadFile(cfg.ScyllaCACertPath)
		if err != nil {
			return nil, fmt.Errorf("impossible de lire le certificat CA: %v", err)
		}
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("impossible de parser le certificat CA")
		}
		cluster.SslOpts = &gocql.SslOptions{CaPath: cfg.ScyllaCACertPath}
	}

	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, err
	}

	// Note: Les tables doivent être créées manuellement via scripts/vendorhub_init.cql
	log.Printf("✅ Session ScyllaDB ouverte sur le keyspace '%s'", cfg.ScyllaKeyspace)
	return session, nil
}

// =============================================
// REDIS
// =============================================

func connectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisHost,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	log.Println("✅ Connecté à Redis")
	return rdb, nil
}

// =============================================
// ELASTICSEARCH
// =============================================

func connectElastic(cfg *config.Config) *elasticsearch.Client {
	if cfg.ElasticURL == "" {
		log.Println("⚠️ ELASTIC_URL non configuré — recherche vendeurs désactivée")
		return nil
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ElasticURL},
		Username:  cfg.ElasticUser,
		Password:  cfg.ElasticPassword,
	})
	if err != nil {
		log.Printf("⚠️ Erreur création client Elasticsearch: %v — recherche vendeurs désactivée", err)
		return nil
	}

	res, err := client.Info()
	if err != nil {
		log.Printf("⚠️ Erreur connexion Elasticsearch: %v — recherche vendeurs désactivée", err)
		return nil
	}
	defer res.Body.Close()

	log.Println("✅ Connecté à Elasticsearch")
	return client
}
