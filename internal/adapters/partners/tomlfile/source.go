package tomlfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/foodrescue/rescue-cli/internal/domain"
	"github.com/foodrescue/rescue-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	partnersPathKey  = "partners.path"
	configDirName    = ".foodrescue"
	partnersFileName = "partners.toml"
)

// Source reads the partner roster from a TOML file. A missing file is
// an empty roster, not an error; allocation then simply has nowhere to
// route weight.
type Source struct {
	path string
}

var _ ports.PartnerSource = (*Source)(nil)

func NewSource(cfg *viper.Viper) (*Source, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetDefault(partnersPathKey, filepath.Join(homeDir, configDirName, partnersFileName))

	path := cfg.GetString(partnersPathKey)
	if path == "" {
		return nil, errors.New("partners path is empty")
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve partners path: %w", err)
	}

	return &Source{path: filepath.Clean(path)}, nil
}

func (s *Source) Partners(ctx context.Context) ([]domain.Partner, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read partners file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPartnersInvalid, err)
	}
	if err := file.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPartnersInvalid, err)
	}

	partners := make([]domain.Partner, 0, len(file.Partners))
	for _, entry := range file.Partners {
		partners = append(partners, domain.Partner{
			ID:     entry.ID,
			Name:   entry.Name,
			Weight: entry.Weight,
		})
	}

	return partners, nil
}
