// Package retrieval ranks a user's conversation history against the
// current query and assembles the bounded working set handed to prompt
// building. Scoring rebuilds a small TF-IDF corpus per call instead of
// maintaining a persistent index: the corpus is the query plus this
// user's own turns, so weights are local to the request and there is no
// shared index state to invalidate.
package retrieval

import (
	"math"

	"github.com/antoniostano/amara/internal/profile"
	"github.com/antoniostano/amara/internal/textnorm"
)

// Score returns one relevance score per historical turn, in input order.
// The query is document 0 of the ephemeral corpus and each turn's
// combined message+response is a document of its own. Turns with missing
// fields stay in the corpus as empty documents and score zero. The score
// is the cosine similarity between TF-IDF vectors, so it lands in [0, 1]
// with 1 meaning lexically identical after normalization.
func Score(query string, history []profile.ConversationTurn) []float64 {
	docs := make([][]string, 0, len(history)+1)
	docs = append(docs, textnorm.Tokens(query))
	for _, turn := range history {
		docs = append(docs, textnorm.Tokens(turn.Message+" "+turn.Response))
	}

	idf := inverseDocumentFrequencies(docs)
	queryVec := tfidfVector(docs[0], idf)

	scores := make([]float64, len(history))
	for i := range history {
		scores[i] = cosine(queryVec, tfidfVector(docs[i+1], idf))
	}
	return scores
}

// inverseDocumentFrequencies computes smoothed IDF weights over the
// corpus: ln((1+N)/(1+df)) + 1. Smoothing keeps terms that appear in
// every document from zeroing out entirely.
func inverseDocumentFrequencies(docs [][]string) map[string]float64 {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, term := range doc {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}
	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log((1+n)/(1+float64(count))) + 1
	}
	return idf
}

func tfidfVector(doc []string, idf map[string]float64) map[string]float64 {
	if len(doc) == 0 {
		return nil
	}
	counts := make(map[string]int, len(doc))
	for _, term := range doc {
		counts[term]++
	}
	vec := make(map[string]float64, len(counts))
	total := float64(len(doc))
	for term, count := range counts {
		vec[term] = float64(count) / total * idf[term]
	}
	return vec
}

func cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for term, w := range a {
		normA += w * w
		if bw, ok := b[term]; ok {
			dot += w * bw
		}
	}
	for _, w := range b {
		normB += w * w
	}
	if dot == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
