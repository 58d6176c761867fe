// Package tfidf implements a small term-frequency/inverse-document-frequency
// vector space with cosine-similarity ranking. It is rebuilt from scratch on
// every use; there is no persistent index, which is fine for small catalogs.
package tfidf

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// stopWords mirrors the usual english stop-word list for product text.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(
		"a about above after again against all am an and any are as at be because been before being below between both but by " +
			"can did do does doing down during each few for from further had has have having he her here hers herself him himself his " +
			"how if in into is it its itself just me more most my myself no nor not now of off on once only or other our ours ourselves " +
			"out over own same she should so some such than that the their theirs them themselves then there these they this those through " +
			"to too under until up very was we were what when where which while who whom why will with you your yours yourself yourselves") {
		stopWords[w] = struct{}{}
	}
}

// Preprocess lowercases text and strips everything but letters, digits and spaces.
func Preprocess(text string) string {
	text = strings.ToLower(text)
	text = nonAlnum.ReplaceAllString(text, " ")
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

// tokenize splits preprocessed text into unigrams (2+ characters, stop words
// removed) plus bigrams built over the surviving unigrams.
func tokenize(text string) []string {
	var terms []string
	for _, w := range strings.Fields(text) {
		if len(w) < 2 {
			continue
		}
		if _, skip := stopWords[w]; skip {
			continue
		}
		terms = append(terms, w)
	}
	n := len(terms)
	for i := 0; i < n-1; i++ {
		terms = append(terms, terms[i]+" "+terms[i+1])
	}
	return terms
}

// Match is one ranked corpus document.
type Match struct {
	Index int     // position in the fitted corpus
	Score float64 // cosine similarity, > 0
}

// Vectorizer holds the fitted vocabulary, idf weights and document vectors.
type Vectorizer struct {
	vocab map[string]int
	idf   []float64
	docs  []map[int]float64
}

func New() *Vectorizer {
	return &Vectorizer{vocab: make(map[string]int)}
}

// Fit builds the vocabulary and the l2-normalized tf-idf vector of every document.
func (v *Vectorizer) Fit(docs []string) {
	v.vocab = make(map[string]int)
	var df []int
	counts := make([]map[int]float64, len(docs))

	for i, doc := range docs {
		tf := make(map[int]float64)
		for _, term := range tokenize(Preprocess(doc)) {
			id, ok := v.vocab[term]
			if !ok {
				id = len(v.vocab)
				v.vocab[term] = id
				df = append(df, 0)
			}
			if tf[id] == 0 {
				df[id]++
			}
			tf[id]++
		}
		counts[i] = tf
	}

	// Smoothed idf: ln((1+N)/(1+df)) + 1.
	n := float64(len(docs))
	v.idf = make([]float64, len(df))
	for id, d := range df {
		v.idf[id] = math.Log((1+n)/(1+float64(d))) + 1
	}

	v.docs = make([]map[int]float64, len(docs))
	for i, tf := range counts {
		v.docs[i] = v.normalize(v.weigh(tf))
	}
}

func (v *Vectorizer) weigh(tf map[int]float64) map[int]float64 {
	vec := make(map[int]float64, len(tf))
	for id, count := range tf {
		vec[id] = count * v.idf[id]
	}
	return vec
}

func (v *Vectorizer) normalize(vec map[int]float64) map[int]float64 {
	var sum float64
	for _, w := range vec {
		sum += w * w
	}
	if sum == 0 {
		return vec
	}
	norm := math.Sqrt(sum)
	for id := range vec {
		vec[id] /= norm
	}
	return vec
}

// vectorizeQuery maps query text into the fitted space; unseen terms drop out.
func (v *Vectorizer) vectorizeQuery(query string) map[int]float64 {
	tf := make(map[int]float64)
	for _, term := range tokenize(Preprocess(query)) {
		if id, ok := v.vocab[term]; ok {
			tf[id]++
		}
	}
	return v.normalize(v.weigh(tf))
}

// Query ranks the fitted corpus against the query text and returns up to topK
// matches with a strictly positive cosine similarity, ordered by descending
// score. Equal scores keep corpus order.
func (v *Vectorizer) Query(query string, topK int) []Match {
	if len(v.docs) == 0 {
		return nil
	}
	qvec := v.vectorizeQuery(query)
	if len(qvec) == 0 {
		return nil
	}

	var matches []Match
	for i, doc := range v.docs {
		var score float64
		for id, w := range qvec {
			score += w * doc[id]
		}
		if score > 0 {
			matches = append(matches, Match{Index: i, Score: score})
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})
	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches
}

// BestMatch returns the single highest-scoring document, or ok=false when
// nothing in the corpus scores above zero.
func (v *Vectorizer) BestMatch(query string) (Match, bool) {
	matches := v.Query(query, 1)
	if len(matches) == 0 {
		return Match{}, false
	}
	return matches[0], true
}
