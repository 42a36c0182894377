package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/foodrescue/rescue-cli/internal/domain"
	"github.com/foodrescue/rescue-cli/internal/ports"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	sessionsDirKey  = "sessions.dir"
	sessionsDirName = "sessions"
	configDirName   = ".foodrescue"
	sessionFileExt  = ".json"
	sessionFileMode = 0o600
	sessionDirMode  = 0o700
	tempFilePattern = ".session-*.json.tmp"
)

// Repository persists one JSON document per session id under a
// configured directory. It owns the on-disk representation; callers
// only ever see decoded snapshots.
type Repository struct {
	sessionsDir string
	clock       ports.Clock
	logger      *zap.Logger
}

// Per-directory write locks. Cross-process coordination is out of
// scope; at-most-one in-flight writer per session is only guaranteed
// within this process.
var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SessionRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper, clock ports.Clock, logger *zap.Logger) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetDefault(sessionsDirKey, filepath.Join(homeDir, configDirName, sessionsDirName))

	sessionsDir := cfg.GetString(sessionsDirKey)
	if sessionsDir == "" {
		return nil, errors.New("sessions directory is empty")
	}
	sessionsDir, err = filepath.Abs(sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("resolve sessions directory: %w", err)
	}

	return &Repository{
		sessionsDir: filepath.Clean(sessionsDir),
		clock:       clock,
		logger:      logger,
	}, nil
}

func (r *Repository) Load(ctx context.Context, id domain.SessionID) (domain.SessionDocument, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionDocument{}, err
	}

	path, err := r.sessionPath(id)
	if err != nil {
		return domain.SessionDocument{}, err
	}

	mu := lockForPath(path)
	mu.RLock()
	defer mu.RUnlock()

	return r.readDocument(id, path)
}

func (r *Repository) Append(ctx context.Context, id domain.SessionID, record domain.DonationRecord) (domain.SessionDocument, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionDocument{}, err
	}

	if err := record.Validate(); err != nil {
		return domain.SessionDocument{}, err
	}

	path, err := r.sessionPath(id)
	if err != nil {
		return domain.SessionDocument{}, err
	}

	mu := lockForPath(path)
	mu.Lock()
	defer mu.Unlock()

	document, err := r.readDocument(id, path)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return domain.SessionDocument{}, err
		}
		document = domain.SessionDocument{SessionID: id, CreatedAt: r.clock.Now()}
	}

	document.Records = append(document.Records, record)
	document.UpdatedAt = r.clock.Now()

	if err := ctx.Err(); err != nil {
		return domain.SessionDocument{}, err
	}

	if err := r.writeDocument(path, document); err != nil {
		return domain.SessionDocument{}, err
	}

	return document, nil
}

func (r *Repository) Merge(ctx context.Context, id domain.SessionID, other domain.SessionDocument) (domain.SessionDocument, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionDocument{}, err
	}

	path, err := r.sessionPath(id)
	if err != nil {
		return domain.SessionDocument{}, err
	}

	mu := lockForPath(path)
	mu.Lock()
	defer mu.Unlock()

	document, err := r.readDocument(id, path)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return domain.SessionDocument{}, err
		}
		document = domain.SessionDocument{SessionID: id, CreatedAt: r.clock.Now()}
	}

	for _, record := range other.Records {
		if err := record.Validate(); err != nil {
			return domain.SessionDocument{}, err
		}
		if document.Contains(record) {
			continue
		}
		document.Records = append(document.Records, record)
	}
	document.UpdatedAt = r.clock.Now()

	if err := ctx.Err(); err != nil {
		return domain.SessionDocument{}, err
	}

	if err := r.writeDocument(path, document); err != nil {
		return domain.SessionDocument{}, err
	}

	return document, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.SessionID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(r.sessionsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read sessions directory: %w", err)
	}

	ids := make([]domain.SessionID, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), sessionFileExt) {
			continue
		}
		ids = append(ids, domain.SessionID(strings.TrimSuffix(entry.Name(), sessionFileExt)))
	}

	return ids, nil
}

// readDocument tolerates corruption: an unparseable or schema-invalid
// file yields an empty document for the session instead of an error,
// so a single bad file never blocks downstream reporting.
func (r *Repository) readDocument(id domain.SessionID, path string) (domain.SessionDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.SessionDocument{}, domain.ErrSessionNotFound
		}
		return domain.SessionDocument{}, fmt.Errorf("read session file: %w", err)
	}

	var file fileSchema
	if err := json.Unmarshal(data, &file); err != nil {
		r.logger.Warn("session file corrupt, substituting empty document",
			zap.String("session_id", string(id)),
			zap.Error(err))
		return domain.SessionDocument{SessionID: id}, nil
	}
	if err := file.validateVersion(); err != nil {
		r.logger.Warn("session file version unsupported, substituting empty document",
			zap.String("session_id", string(id)),
			zap.Error(err))
		return domain.SessionDocument{SessionID: id}, nil
	}
	file.applyDefaults()
	if err := file.validate(); err != nil {
		r.logger.Warn("session file failed schema validation, substituting empty document",
			zap.String("session_id", string(id)),
			zap.Error(err))
		return domain.SessionDocument{SessionID: id}, nil
	}

	document, err := fromSchema(file)
	if err != nil {
		r.logger.Warn("session file undecodable, substituting empty document",
			zap.String("session_id", string(id)),
			zap.Error(err))
		return domain.SessionDocument{SessionID: id}, nil
	}
	document.SessionID = id

	return document, nil
}

func (r *Repository) writeDocument(path string, document domain.SessionDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), sessionDirMode); err != nil {
		return fmt.Errorf("create sessions directory: %w", err)
	}

	data, err := json.MarshalIndent(toSchema(document), "", "  ")
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp session file: %w", err)
	}

	if err := tempFile.Chmod(sessionFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp session file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp session file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}

	cleanup = false

	return nil
}

func (r *Repository) sessionPath(id domain.SessionID) (string, error) {
	safe := sanitizeSessionID(string(id))
	if safe == "" {
		return "", &domain.ValidationError{Field: "session_id", Reason: "must contain at least one of [A-Za-z0-9_-]"}
	}

	return filepath.Join(r.sessionsDir, safe+sessionFileExt), nil
}

// sanitizeSessionID strips anything outside [A-Za-z0-9_-] so a session
// id can never escape the sessions directory.
func sanitizeSessionID(id string) string {
	var b strings.Builder
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
			b.WriteRune(c)
		}
	}

	return b.String()
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
