package app

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/studyengine/internal/adapter/repository"
	"github.com/eslsoft/studyengine/internal/adapter/sheet"
	"github.com/eslsoft/studyengine/internal/infrastructure/config"
	"github.com/eslsoft/studyengine/internal/usecase"
)

func provideRetentionConfig(cfg *config.Config) usecase.RetentionConfig {
	return usecase.RetentionConfig{
		InitialEase:         cfg.Study.InitialEase,
		MinimumEase:         cfg.Study.MinimumEase,
		MaximumIntervalDays: cfg.Study.MaximumIntervalDays,
		LapseDelay:          cfg.Study.LapseDelay,
	}
}

func provideTraditionalPolicy(cfg *config.Config) usecase.TraditionalPolicy {
	return usecase.TraditionalPolicy{
		AgainOffset: cfg.Study.AgainOffset,
		HardOffset:  cfg.Study.HardOffset,
	}
}

func provideRand(cfg *config.Config) *rand.Rand {
	return rand.New(rand.NewSource(cfg.Seed()))
}

func provideImportParser(logger logrus.FieldLogger) usecase.ImportParser {
	return usecase.NewImportParser(usecase.WithImportLogger(logger))
}

func provideSheetSource(parser usecase.ImportParser) *sheet.Source {
	return sheet.NewSource(parser)
}

func providePoolSelector(cfg *config.Config) (usecase.PoolSelector, error) {
	return usecase.NewPoolSelector(cfg.Study.Filter, cfg.Study.OrderBy)
}

func provideRetentionStore() *repository.MemoryRetentionStore {
	return repository.NewMemoryRetentionStore(nil)
}
