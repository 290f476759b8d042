package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"typedrill/internal/models"
	"typedrill/internal/repository"
)

const backupVersion = "1.0"

// BackupData is the complete logical state of the system as written by the
// backup tool: profiles, the role relation, the passage catalog and the
// result ledger.
type BackupData struct {
	Version    string                 `json:"version"`
	ExportedAt time.Time              `json:"exported_at"`
	Profiles   []ProfileBackup        `json:"profiles"`
	Roles      map[string]models.Role `json:"roles"`
	Passages   []models.Passage       `json:"passages"`
	Results    []ResultBackup         `json:"results"`
}

// ProfileBackup carries the full profile record including the credential,
// which the JSON view of UserProfile deliberately omits.
type ProfileBackup struct {
	Identity     string    `json:"identity"`
	Name         string    `json:"name"`
	Mobile       string    `json:"mobile"`
	Credential   string    `json:"credential"`
	SessionToken string    `json:"session_token"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ResultBackup mirrors models.TestResult with explicit field tags so the
// on-disk format stays stable if the model view changes.
type ResultBackup struct {
	ID           string    `json:"id"`
	UserName     string    `json:"user_name"`
	UserMobile   string    `json:"user_mobile"`
	PassageTitle string    `json:"passage_title"`
	WPM          float64   `json:"wpm"`
	Accuracy     float64   `json:"accuracy"`
	Mistakes     int       `json:"mistakes"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// BackupService exports and imports the logical state of all four stores.
type BackupService struct {
	stores repository.Stores
}

// NewBackupService creates a backup service over the given stores.
func NewBackupService(stores repository.Stores) *BackupService {
	return &BackupService{stores: stores}
}

// Export writes the full state to the given file as JSON.
func (s *BackupService) Export(ctx context.Context, path string) error {
	data, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	return nil
}

// Snapshot collects the state of all stores into a BackupData value.
func (s *BackupService) Snapshot(ctx context.Context) (*BackupData, error) {
	profiles, err := s.stores.Users.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	roles, err := s.stores.Roles.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	passages, err := s.stores.Passages.ListPassages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list passages: %w", err)
	}
	results, err := s.stores.Results.ListResults(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	data := &BackupData{
		Version:    backupVersion,
		ExportedAt: time.Now(),
		Roles:      roles,
		Passages:   passages,
	}
	for _, p := range profiles {
		data.Profiles = append(data.Profiles, ProfileBackup{
			Identity:     p.Identity,
			Name:         p.Name,
			Mobile:       p.Mobile,
			Credential:   p.Credential,
			SessionToken: p.SessionToken,
			CreatedAt:    p.CreatedAt,
			UpdatedAt:    p.UpdatedAt,
		})
	}
	for _, r := range results {
		data.Results = append(data.Results, ResultBackup{
			ID:           r.ID,
			UserName:     r.UserName,
			UserMobile:   r.UserMobile,
			PassageTitle: r.PassageTitle,
			WPM:          r.WPM,
			Accuracy:     r.Accuracy,
			Mistakes:     r.Mistakes,
			SubmittedAt:  r.SubmittedAt,
		})
	}
	return data, nil
}

// Import reads a backup file and loads it into the stores. When clear is
// true all existing state is dropped first; stores that cannot be cleared
// cause an error before anything is written.
func (s *BackupService) Import(ctx context.Context, path string, clear bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	var data BackupData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if data.Version != backupVersion {
		return fmt.Errorf("unsupported backup version %q", data.Version)
	}

	if clear {
		if err := s.reset(ctx); err != nil {
			return err
		}
	}

	return s.Restore(ctx, &data)
}

// Restore loads a snapshot into the stores.
func (s *BackupService) Restore(ctx context.Context, data *BackupData) error {
	for _, p := range data.Profiles {
		profile := &models.UserProfile{
			Identity:     p.Identity,
			Name:         p.Name,
			Mobile:       p.Mobile,
			Credential:   p.Credential,
			SessionToken: p.SessionToken,
			CreatedAt:    p.CreatedAt,
			UpdatedAt:    p.UpdatedAt,
		}
		if err := s.stores.Users.CreateProfile(ctx, profile); err != nil {
			return fmt.Errorf("failed to restore profile %s: %w", p.Identity, err)
		}
	}
	for identity, role := range data.Roles {
		if err := s.stores.Roles.SetRole(ctx, identity, role); err != nil {
			return fmt.Errorf("failed to restore role for %s: %w", identity, err)
		}
	}
	for i := range data.Passages {
		if err := s.stores.Passages.CreatePassage(ctx, &data.Passages[i]); err != nil {
			return fmt.Errorf("failed to restore passage %s: %w", data.Passages[i].ID, err)
		}
	}
	for _, r := range data.Results {
		result := &models.TestResult{
			ID:           r.ID,
			UserName:     r.UserName,
			UserMobile:   r.UserMobile,
			PassageTitle: r.PassageTitle,
			WPM:          r.WPM,
			Accuracy:     r.Accuracy,
			Mistakes:     r.Mistakes,
			SubmittedAt:  r.SubmittedAt,
		}
		if err := s.stores.Results.AppendResult(ctx, result); err != nil {
			return fmt.Errorf("failed to restore result %s: %w", r.ID, err)
		}
	}
	return nil
}

func (s *BackupService) reset(ctx context.Context) error {
	for name, store := range map[string]interface{}{
		"users":    s.stores.Users,
		"roles":    s.stores.Roles,
		"passages": s.stores.Passages,
		"results":  s.stores.Results,
	} {
		resetter, ok := store.(repository.Resetter)
		if !ok {
			return fmt.Errorf("%s store does not support clearing", name)
		}
		if err := resetter.Reset(ctx); err != nil {
			return fmt.Errorf("failed to clear %s store: %w", name, err)
		}
	}
	return nil
}
