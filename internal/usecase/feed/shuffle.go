package feed

import (
	"math/rand/v2"

	"rsstok/internal/domain/entity"
)

// shuffleArticles applies an in-place Fisher-Yates shuffle so articles from
// different sources interleave rather than appear grouped by feed. Every
// permutation is equally likely.
func shuffleArticles(articles []entity.Article) {
	for i := len(articles) - 1; i > 0; i-- {
		j := rand.IntN(i + 1)
		articles[i], articles[j] = articles[j], articles[i]
	}
}
