package app

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/studyengine/internal/adapter/repository"
	"github.com/eslsoft/studyengine/internal/adapter/sheet"
	"github.com/eslsoft/studyengine/internal/entity"
	"github.com/eslsoft/studyengine/internal/infrastructure/config"
	"github.com/eslsoft/studyengine/internal/usecase"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Config      *config.Config
	Logger      *logrus.Logger
	Rand        *rand.Rand
	Model       usecase.RetentionModel
	Synthesizer usecase.QuestionSynthesizer
	Source      *sheet.Source
	Selector    usecase.PoolSelector
	Store       *repository.MemoryRetentionStore
	Policy      usecase.TraditionalPolicy
}

// NewSession starts a session over items in the configured study mode.
func (c *Container) NewSession(items []entity.LearnableItem) (*usecase.SessionQueue, error) {
	deps := usecase.SessionDeps{
		Model:  c.Model,
		Store:  c.Store,
		Logger: c.Logger,
	}
	if c.Config.Adaptive() {
		return usecase.NewAdaptiveSession(items, deps, c.Rand)
	}
	return usecase.NewTraditionalSession(items, deps, c.Policy)
}
