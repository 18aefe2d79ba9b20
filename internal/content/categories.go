package content

// LessonCategories is the fixed category list offered by the lesson form.
var LessonCategories = []string{
	"Животные", "Растения", "Еда", "Транспорт", "Космос", "Праздники",
	"Фантазия", "Лица", "Дом", "Одежда", "Инструменты", "Природа",
	"Профессии", "Эмоции", "Морское", "Разное",
}

// categorySlugs maps the fixed lesson categories to their English slugs used in exports.
var categorySlugs = map[string]string{
	"Животные":    "animals",
	"Растения":    "plants",
	"Еда":         "food",
	"Транспорт":   "transport",
	"Космос":      "space",
	"Праздники":   "holidays",
	"Фантазия":    "fantasy",
	"Лица":        "faces",
	"Дом":         "home",
	"Одежда":      "clothes",
	"Инструменты": "tools",
	"Природа":     "nature",
	"Профессии":   "professions",
	"Эмоции":      "emotions",
	"Морское":     "sea",
	"Разное":      "misc",
}

// CategorySlug returns the English slug for a lesson category, falling back to
// [Slugify] (transliteration) for categories outside the fixed list.
func CategorySlug(category string) string {
	if slug, ok := categorySlugs[category]; ok {
		return slug
	}
	return Slugify(category)
}

// VideoCategory is one selectable category on the video form.
type VideoCategory struct {
	Key   string
	Label string
}

// VideoCategories is the fixed category list offered by the video form.
var VideoCategories = []VideoCategory{
	{Key: "animals", Label: "🐾 animals"},
	{Key: "science", Label: "🔬 science"},
	{Key: "nature", Label: "🌿 nature"},
	{Key: "space", Label: "🚀 space"},
	{Key: "art", Label: "🎨 art"},
	{Key: "music", Label: "🎵 music"},
	{Key: "human", Label: "🧠 human"},
}

// Video formats
const (
	FormatVideo = "video"
	FormatShort = "short"
)

// Language dependency values
const (
	DependencySpoken = "spoken"
	DependencyVisual = "visual"
)

// ContentLanguages lists the selectable spoken-content languages.
var ContentLanguages = []string{"en", "ru", "he"}
