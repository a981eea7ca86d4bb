package config

// Recipe holds the business limits applied when recipes are written and listed.
type Recipe struct {
	MinCookingTime int   `json:"min_cooking_time" yaml:"min_cooking_time"`
	MinAmount      int   `json:"min_amount" yaml:"min_amount"`
	PageSize       int   `json:"page_size" yaml:"page_size"`
	MaxImageBytes  int64 `json:"max_image_bytes" yaml:"max_image_bytes"`
}

func (r *Recipe) withDefaults() {
	if r.MinCookingTime == 0 {
		r.MinCookingTime = 1
	}
	if r.MinAmount == 0 {
		r.MinAmount = 1
	}
	if r.PageSize == 0 {
		r.PageSize = 6
	}
	if r.MaxImageBytes == 0 {
		r.MaxImageBytes = 10 << 20
	}
}

func ProvideRecipeConfig(cfg *Config) *Recipe {
	return cfg.Recipe
}
