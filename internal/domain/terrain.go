package domain

// Point - географическая точка в градусах
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// TerrainSample - тройка признаков, единственный вход классификатора.
// Отрицательная высота (ниже уровня моря) валидна.
type TerrainSample struct {
	ElevationM      float64 `json:"elevation_m"`
	CoastDistanceKm float64 `json:"coast_distance_km"`
	PrecipitationMm float64 `json:"precipitation_mm"`
}

// Category - одна из пяти категорий рельефа (классическая тамильская таксономия ainthinai)
type Category string

const (
	CategoryNeithal  Category = "neithal"  // побережье
	CategoryKurinji  Category = "kurinji"  // горы
	CategoryPaalai   Category = "paalai"   // засушливая зона
	CategoryMullai   Category = "mullai"   // лес / пастбища
	CategoryMarudham Category = "marudham" // равнины
)

// Categories - все категории в порядке приоритета строгих правил
var Categories = []Category{
	CategoryNeithal,
	CategoryKurinji,
	CategoryPaalai,
	CategoryMullai,
	CategoryMarudham,
}

// CategoryDescriptions - человекочитаемые описания категорий
var CategoryDescriptions = map[Category]string{
	CategoryNeithal:  "Coastal lowland within reach of the sea",
	CategoryKurinji:  "Mountainous terrain at high elevation",
	CategoryPaalai:   "Arid inland terrain with low precipitation",
	CategoryMullai:   "Forest and pastoral mid-elevation terrain",
	CategoryMarudham: "Fertile low-lying plains",
}

// IsValid проверяет, что категория входит в закрытое перечисление
func (c Category) IsValid() bool {
	switch c {
	case CategoryNeithal, CategoryKurinji, CategoryPaalai, CategoryMullai, CategoryMarudham:
		return true
	}
	return false
}

// Tier - уровень правил, на котором сработала классификация
type Tier string

const (
	TierStrict   Tier = "strict"
	TierFallback Tier = "fallback"
)

// Thresholds - пороговые значения правил классификации.
// Передаются явным значением в каждый вызов, не глобальный синглтон.
type Thresholds struct {
	CoastalDistanceKm  float64 `json:"coastal_distance_km"`
	HighElevationM     float64 `json:"high_elevation_m"`
	MidElevationMinM   float64 `json:"mid_elevation_min_m"`
	LowElevationM      float64 `json:"low_elevation_m"`
	LowPrecipitationMm float64 `json:"low_precipitation_mm"`
}

// DefaultThresholds возвращает пороги по умолчанию
func DefaultThresholds() Thresholds {
	return Thresholds{
		CoastalDistanceKm:  50,
		HighElevationM:     1000,
		MidElevationMinM:   200,
		LowElevationM:      200,
		LowPrecipitationMm: 250,
	}
}

// Classification - результат классификации одной точки
type Classification struct {
	Category     Category      `json:"category"`
	Tier         Tier          `json:"tier"`
	Rule         string        `json:"rule"`
	Explanations []string      `json:"explanations"`
	Sample       TerrainSample `json:"sample"`
}

// RuleTrace - результат проверки одного правила, передаётся в observer hook
type RuleTrace struct {
	Tier      Tier     `json:"tier"`
	Rule      string   `json:"rule"`
	Category  Category `json:"category"`
	Matched   bool     `json:"matched"`
	Predicate string   `json:"predicate"`
}

// CachedClassification - результат классификации в том виде, в котором он
// лежит в кеше: вместе с флагами деградации. Повтор из кеша обязан сообщать
// о подставленных значениях так же, как и первый ответ.
type CachedClassification struct {
	Classification         Classification `json:"classification"`
	ElevationEstimated     bool           `json:"elevation_estimated"`
	PrecipitationEstimated bool           `json:"precipitation_estimated"`
}

// TerrainData - признаки точки вместе с флагами деградации провайдеров.
// Estimated-флаги видимы вызывающему: подставленное значение по умолчанию
// никогда не маскируется под реальные данные.
type TerrainData struct {
	Sample                 TerrainSample `json:"sample"`
	ElevationEstimated     bool          `json:"elevation_estimated"`
	PrecipitationEstimated bool          `json:"precipitation_estimated"`
}
