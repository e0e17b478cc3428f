// Package screens holds what the interviewx screens share.
package screens

import (
	"github.com/abhisek/interviewx/internal/assessment"
	"github.com/abhisek/interviewx/internal/config"
	"github.com/abhisek/interviewx/internal/conversation"
	"github.com/abhisek/interviewx/internal/practice"
	"github.com/abhisek/interviewx/internal/resources"
	"github.com/abhisek/interviewx/internal/store"
)

// Env carries the services and settings screens are built from.
type Env struct {
	Conversation *conversation.Client
	Generator    assessment.Generator
	Resources    *resources.Client
	Practice     *practice.Service
	Reports      store.ReportRepo
	Attempts     store.AttemptRepo

	Config     *config.Config
	ConfigPath string
}
