// Package avatar keeps the avatar customizer selection.
package avatar

import (
	"errors"
	"fmt"
	"sync"

	"github.com/moodmate/companion/internal/catalog"
	"github.com/moodmate/companion/internal/model/avatar"
)

var ErrInvalidSelection = errors.New("invalid avatar selection")

type Service struct {
	mu      sync.RWMutex
	content catalog.AvatarContent
	profile avatar.Profile
}

// NewService starts from the catalog defaults.
func NewService(content catalog.AvatarContent) *Service {
	s := &Service{content: content}
	s.profile = s.Defaults()
	return s
}

// Features returns the customization catalog.
func (s *Service) Features() catalog.AvatarContent {
	return s.content
}

// Defaults builds the initial profile.
func (s *Service) Defaults() avatar.Profile {
	features := make(map[string]string, len(s.content.Features))
	for _, f := range s.content.Features {
		features[f.ID] = f.Default
	}
	p := avatar.Profile{
		Features:    features,
		HairColor:   s.content.DefaultColors["hair"],
		EyeColor:    s.content.DefaultColors["eye"],
		OutfitColor: s.content.DefaultColors["outfit"],
		Size:        s.content.Size.Default,
	}
	p.SkinClass = s.content.SkinPalette[features["skin"]]
	return p
}

// Profile returns a copy of the current selection.
func (s *Service) Profile() avatar.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.profile)
}

// Update merges patch onto the current profile. Nothing changes if any field is invalid.
func (s *Service) Update(patch avatar.Patch) (avatar.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := clone(s.profile)
	for id, value := range patch.Features {
		feature, ok := s.feature(id)
		if !ok {
			return avatar.Profile{}, fmt.Errorf("%w: unknown feature %q", ErrInvalidSelection, id)
		}
		if !contains(feature.Options, value) {
			return avatar.Profile{}, fmt.Errorf("%w: %q is not a %s option", ErrInvalidSelection, value, feature.Name)
		}
		next.Features[id] = value
	}

	for _, c := range []struct {
		name  string
		value *string
		dst   *string
	}{
		{"hairColor", patch.HairColor, &next.HairColor},
		{"eyeColor", patch.EyeColor, &next.EyeColor},
		{"outfitColor", patch.OutfitColor, &next.OutfitColor},
	} {
		if c.value == nil {
			continue
		}
		if !contains(s.content.Colors, *c.value) {
			return avatar.Profile{}, fmt.Errorf("%w: %s %q is not in the palette", ErrInvalidSelection, c.name, *c.value)
		}
		*c.dst = *c.value
	}

	if patch.Size != nil {
		size := *patch.Size
		if size < s.content.Size.Min || size > s.content.Size.Max {
			return avatar.Profile{}, fmt.Errorf("%w: size must be between %d and %d", ErrInvalidSelection, s.content.Size.Min, s.content.Size.Max)
		}
		next.Size = size
	}

	next.SkinClass = s.content.SkinPalette[next.Features["skin"]]
	s.profile = next
	return clone(next), nil
}

// Reset restores the defaults.
func (s *Service) Reset() avatar.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = s.Defaults()
	return clone(s.profile)
}

func (s *Service) feature(id string) (catalog.AvatarFeature, bool) {
	for _, f := range s.content.Features {
		if f.ID == id {
			return f, true
		}
	}
	return catalog.AvatarFeature{}, false
}

func clone(p avatar.Profile) avatar.Profile {
	features := make(map[string]string, len(p.Features))
	for k, v := range p.Features {
		features[k] = v
	}
	p.Features = features
	return p
}

func contains(items []string, v string) bool {
	for _, item := range items {
		if item == v {
			return true
		}
	}
	return false
}
