package content

// PlaceholderImageCount is the size of the bundled placeholder thumbnail pool.
const PlaceholderImageCount = 6

// PlaceholderImageIndex deterministically picks one of poolSize placeholder
// images for an article id, using the same rolling hash at every call site so
// the timeline, the article page and the related-articles cards all agree.
// The hash wraps at 32 bits to match how clients compute it.
func PlaceholderImageIndex(articleID string, poolSize int) int {
	if poolSize <= 0 {
		return 0
	}
	var hash int32
	for _, c := range articleID {
		hash = (hash << 5) - hash + int32(c)
	}
	if hash < 0 {
		hash = -hash
	}
	return int(hash) % poolSize
}

// ArticleImage returns the stored cover image reference when present,
// otherwise a stable placeholder key derived from the article id.
func ArticleImage(articleID, stored string) string {
	if stored != "" {
		return stored
	}
	return placeholderKeys[PlaceholderImageIndex(articleID, PlaceholderImageCount)]
}

var placeholderKeys = []string{
	"article-1",
	"article-2",
	"article-3",
	"article-4",
	"article-5",
	"article-6",
}
