package tomlfile

import "fmt"

type fileSchema struct {
	Partners []partnerSchema `toml:"partners"`
}

type partnerSchema struct {
	ID     string  `toml:"id"`
	Name   string  `toml:"name"`
	Weight float64 `toml:"weight"`
}

func (s fileSchema) validate() error {
	seen := map[string]struct{}{}
	for i, partner := range s.Partners {
		if partner.ID == "" {
			return fmt.Errorf("partner %d: id must not be empty", i)
		}
		if _, ok := seen[partner.ID]; ok {
			return fmt.Errorf("partner %d: duplicate id %q", i, partner.ID)
		}
		seen[partner.ID] = struct{}{}
		if partner.Weight < 0 {
			return fmt.Errorf("partner %q: weight must not be negative", partner.ID)
		}
	}

	return nil
}
