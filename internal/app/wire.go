//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/studyengine/internal/infrastructure/config"
	"github.com/eslsoft/studyengine/internal/infrastructure/logging"
	"github.com/eslsoft/studyengine/internal/usecase"
)

var loggingSet = wire.NewSet(
	logging.NewLogger,
	wire.Bind(new(logrus.FieldLogger), new(*logrus.Logger)),
)

var repositorySet = wire.NewSet(
	provideRetentionStore,
)

var usecaseSet = wire.NewSet(
	provideRetentionConfig,
	usecase.NewRetentionModel,
	provideTraditionalPolicy,
	provideRand,
	usecase.NewQuestionSynthesizer,
	provideImportParser,
	providePoolSelector,
)

var sourceSet = wire.NewSet(
	provideSheetSource,
)

// Initialize builds the application container from cfg using Wire.
func Initialize(cfg *config.Config) (*Container, error) {
	wire.Build(
		loggingSet,
		repositorySet,
		usecaseSet,
		sourceSet,
		wire.Struct(new(Container), "*"),
	)
	return nil, nil
}
