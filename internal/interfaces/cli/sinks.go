package cli

import (
	stderrors "errors"
	"io"

	"github.com/turtacn/DealLens/internal/application/extraction"
	"github.com/turtacn/DealLens/internal/config"
	"github.com/turtacn/DealLens/internal/infrastructure/database/postgres"
	"github.com/turtacn/DealLens/internal/infrastructure/database/postgres/repositories"
	"github.com/turtacn/DealLens/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DealLens/internal/infrastructure/storage/minio"
)

// sinkSet is the forwarders enabled in config and the connections behind
// them.
type sinkSet struct {
	forwarders []extraction.Forwarder
	closers    []io.Closer
}

func (s *sinkSet) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// openSinks connects every enabled sink. A sink that cannot connect is logged
// and left out so the JSON file is still written.
func openSinks(cfg *config.Config, logger logging.Logger) *sinkSet {
	s := &sinkSet{}

	if cfg.Database.Enabled {
		conn, err := postgres.NewConnection(postgres.FromConfig(cfg.Database), logger)
		if err != nil {
			logger.Warn("Postgres sink disabled", logging.Err(err))
		} else {
			s.closers = append(s.closers, conn)
			if cfg.Database.AutoMigrate {
				if err := conn.RunMigrations(); err != nil {
					logger.Warn("Migrations failed", logging.Err(err))
				}
			}
			repo := repositories.NewOutcomeRepository(conn, logger)
			s.forwarders = append(s.forwarders, extraction.NewStoreForwarder(repo, cfg.Extract.OrganizationID, logger))
		}
	}

	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(kafka.ProducerConfigFrom(cfg.Kafka), logger)
		if err != nil {
			logger.Warn("Kafka sink disabled", logging.Err(err))
		} else {
			s.closers = append(s.closers, producer)
			s.forwarders = append(s.forwarders, extraction.NewEventForwarder(producer, cfg.Kafka.DealsTopic, logger))
		}
	}

	if cfg.MinIO.Enabled {
		client, err := minio.NewMinIOClient(minio.FromConfig(cfg.MinIO), logger)
		if err != nil {
			logger.Warn("MinIO sink disabled", logging.Err(err))
		} else {
			s.closers = append(s.closers, client)
			s.forwarders = append(s.forwarders, extraction.NewArchiveForwarder(minio.NewExtractionArchive(client, logger), logger))
		}
	}

	return s
}

//Personal.AI order the ending
