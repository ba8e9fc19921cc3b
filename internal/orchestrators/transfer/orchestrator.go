// Package transfer exports the tracker's collections to a JSON document and
// imports them back. Imports are two-step: PreviewImport validates and
// filters the document, CommitImport replaces the collections wholesale.
package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"strings"

	"github.com/KirkDiggler/rpg-skillcheck/internal/errors"
	"github.com/KirkDiggler/rpg-skillcheck/internal/orchestrators/roster"
	"github.com/KirkDiggler/rpg-skillcheck/internal/orchestrators/session"
	"github.com/KirkDiggler/rpg-skillcheck/internal/pkg/clock"
)

// Service defines the interface for export and import
type Service interface {
	Export(ctx context.Context, input *ExportInput) (*ExportOutput, error)
	PreviewImport(ctx context.Context, input *PreviewImportInput) (*PreviewImportOutput, error)
	CommitImport(ctx context.Context, input *CommitImportInput) (*CommitImportOutput, error)
}

// Config holds the dependencies for the transfer orchestrator
type Config struct {
	Roster   roster.Service
	Sessions session.Service
	Clock    clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roster == nil {
		vb.RequiredField("Roster")
	}
	if c.Sessions == nil {
		vb.RequiredField("Sessions")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	roster   roster.Service
	sessions session.Service
	clock    clock.Clock
}

// NewOrchestrator creates a transfer service over the roster and session
// services
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		roster:   cfg.Roster,
		sessions: cfg.Sessions,
		clock:    cfg.Clock,
	}, nil
}

// ParseScope validates a scope name
func ParseScope(name string) (Scope, error) {
	scope := Scope(strings.ToLower(strings.TrimSpace(name)))

	allowed := make([]string, len(Scopes))
	for i, s := range Scopes {
		allowed[i] = string(s)
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("scope", string(scope), allowed, vb)
	if err := vb.Build(); err != nil {
		return "", err
	}
	return scope, nil
}

// Export writes the selected collections with version metadata
func (o *orchestrator) Export(ctx context.Context, input *ExportInput) (*ExportOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	scope, err := ParseScope(string(input.Scope))
	if err != nil {
		return nil, err
	}

	now := o.clock.Now()
	doc, err := newDocument(scope, now)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build export metadata")
	}

	if scope == ScopePlayers || scope == ScopeAll {
		out, err := o.roster.ListPlayers(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list players")
		}
		if doc.Players, err = json.Marshal(out.Players); err != nil {
			return nil, errors.Wrap(err, "failed to encode players")
		}
	}
	if scope == ScopeEvents || scope == ScopeAll {
		out, err := o.roster.ListEvents(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list events")
		}
		if doc.Events, err = json.Marshal(out.Events); err != nil {
			return nil, errors.Wrap(err, "failed to encode events")
		}
	}
	if scope == ScopeSessions || scope == ScopeAll {
		out, err := o.sessions.GetHistory(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read session history")
		}
		if doc.SessionHistory, err = json.Marshal(out.Sessions); err != nil {
			return nil, errors.Wrap(err, "failed to encode session history")
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode export document")
	}

	filename := fmt.Sprintf("dnd-%s-%s.json", fileDataset(scope), now.Format("2006-01-02"))
	slog.Info("Data exported",
		"scope", scope,
		"filename", filename,
		"bytes", len(data),
	)

	return &ExportOutput{
		Filename:    filename,
		ContentType: ContentType,
		Data:        data,
	}, nil
}

// PreviewImport validates a document and keeps the records of the selected
// scope that pass shape validation. Nothing is changed until CommitImport.
func (o *orchestrator) PreviewImport(_ context.Context, input *PreviewImportInput) (*PreviewImportOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	scope, err := ParseScope(string(input.Scope))
	if err != nil {
		return nil, err
	}

	mediaType, _, err := mime.ParseMediaType(input.ContentType)
	if err != nil || mediaType != ContentType {
		return nil, errors.InvalidArgumentf("file must be JSON, got %q", input.ContentType)
	}

	var doc document
	if err := json.Unmarshal(input.Data, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "file is not valid JSON")
	}
	if !truthy(doc.Version) || !truthy(doc.ExportDate) {
		return nil, errors.InvalidArgument("missing version info")
	}

	plan := &ImportPlan{Scope: scope}
	switch scope {
	case ScopePlayers:
		players, skipped, ok := validPlayers(doc.Players)
		if !ok {
			return nil, errors.InvalidArgument("file has no player data")
		}
		plan.Players, plan.Skipped = players, skipped
	case ScopeEvents:
		events, skipped, ok := validEvents(doc.Events)
		if !ok {
			return nil, errors.InvalidArgument("file has no event data")
		}
		plan.Events, plan.Skipped = events, skipped
	case ScopeSessions:
		sessions, skipped, ok := validSessions(doc.SessionHistory)
		if !ok {
			return nil, errors.InvalidArgument("file has no session history")
		}
		plan.Sessions, plan.Skipped = sessions, skipped
	case ScopeAll:
		// each collection is replaced only if it kept at least one record
		if players, skipped, ok := validPlayers(doc.Players); ok {
			plan.Skipped += skipped
			if len(players) > 0 {
				plan.Players = players
			}
		}
		if events, skipped, ok := validEvents(doc.Events); ok {
			plan.Skipped += skipped
			if len(events) > 0 {
				plan.Events = events
			}
		}
		if sessions, skipped, ok := validSessions(doc.SessionHistory); ok {
			plan.Skipped += skipped
			if len(sessions) > 0 {
				plan.Sessions = sessions
			}
		}
		if plan.Players == nil && plan.Events == nil && plan.Sessions == nil {
			return nil, errors.InvalidArgument("file has no valid data")
		}
	}

	slog.Info("Import previewed",
		"scope", scope,
		"plan", plan.Summary(),
		"skipped", plan.Skipped,
	)

	return &PreviewImportOutput{Plan: plan}, nil
}

// CommitImport replaces every collection the plan carries
func (o *orchestrator) CommitImport(ctx context.Context, input *CommitImportInput) (*CommitImportOutput, error) {
	if input == nil || input.Plan == nil {
		return nil, errors.InvalidArgument("import plan is required")
	}
	plan := input.Plan

	if plan.Players != nil {
		if err := o.roster.ReplacePlayers(ctx, &roster.ReplacePlayersInput{Players: plan.Players}); err != nil {
			return nil, errors.Wrap(err, "failed to import players")
		}
	}
	if plan.Events != nil {
		if err := o.roster.ReplaceEvents(ctx, &roster.ReplaceEventsInput{Events: plan.Events}); err != nil {
			return nil, errors.Wrap(err, "failed to import events")
		}
	}
	if plan.Sessions != nil {
		if err := o.sessions.ReplaceHistory(ctx, &session.ReplaceHistoryInput{Sessions: plan.Sessions}); err != nil {
			return nil, errors.Wrap(err, "failed to import session history")
		}
	}

	message := fmt.Sprintf("Imported %s", plan.Summary())
	slog.Info("Import committed", "scope", plan.Scope, "summary", plan.Summary())

	return &CommitImportOutput{Message: message}, nil
}

func fileDataset(scope Scope) string {
	if scope == ScopeAll {
		return "data"
	}
	return string(scope)
}
