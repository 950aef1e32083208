package avatar

// Profile is the current avatar selection. Features is keyed by feature id (face, hair, ...).
type Profile struct {
	Features    map[string]string `json:"features"`
	HairColor   string            `json:"hairColor"`
	EyeColor    string            `json:"eyeColor"`
	OutfitColor string            `json:"outfitColor"`
	Size        int               `json:"size"`
	// SkinClass is derived from the skin feature.
	SkinClass string `json:"skinClass"`
}

// Patch carries a partial update; nil and missing fields keep their current value.
type Patch struct {
	Features    map[string]string `json:"features"`
	HairColor   *string           `json:"hairColor"`
	EyeColor    *string           `json:"eyeColor"`
	OutfitColor *string           `json:"outfitColor"`
	Size        *int              `json:"size"`
}
