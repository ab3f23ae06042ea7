// Package classify predicts a category label for an item's text using a
// multinomial naive Bayes model over TF-IDF features, fitted once at startup
// from a small fixed labeled corpus. Prediction is deterministic for a given
// model and input; unseen vocabulary simply contributes nothing.
package classify

import (
	"errors"
	"math"
	"regexp"
	"strings"

	"github.com/trungnb/gigfeed/internal/models"
)

// Document pairs a training text with its category label.
type Document struct {
	Text  string
	Label string
}

// DefaultCorpus is the labeled corpus the classifier is fitted from.
func DefaultCorpus() []Document {
	return []Document{
		{Text: "design graphic design logo", Label: "#Design"},
		{Text: "writing content blog article", Label: "#Content"},
		{Text: "programming python javascript", Label: "#Tech"},
		{Text: "translation english vietnamese", Label: "#Translation"},
		{Text: "data entry excel spreadsheet", Label: "#DataEntry"},
	}
}

// smoothing is the Laplace/Lidstone additive term for unseen features.
const smoothing = 1.0

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_][\p{L}\p{N}_]+`)

// Classifier is a fitted model. The zero value is unusable; build one with
// Train or New.
type Classifier struct {
	labels   []string
	vocab    map[string]int
	idf      []float64
	logPrior []float64
	logProb  [][]float64 // per label, per vocabulary term
}

// New fits a classifier from the default corpus.
func New() (*Classifier, error) {
	return Train(DefaultCorpus())
}

// Train fits TF-IDF weights and per-class term likelihoods from the given
// documents. Labels keep their first-seen order, which also breaks ties in
// Predict deterministically.
func Train(docs []Document) (*Classifier, error) {
	if len(docs) == 0 {
		return nil, errors.New("training corpus is empty")
	}

	c := &Classifier{vocab: make(map[string]int)}

	labelIndex := make(map[string]int)
	tokenized := make([][]string, len(docs))
	df := []int{}

	for i, doc := range docs {
		if _, ok := labelIndex[doc.Label]; !ok {
			labelIndex[doc.Label] = len(c.labels)
			c.labels = append(c.labels, doc.Label)
		}

		tokens := tokenize(doc.Text)
		if len(tokens) == 0 {
			return nil, errors.New("training document has no tokens")
		}
		tokenized[i] = tokens

		inDoc := make(map[string]bool)
		for _, t := range tokens {
			if _, ok := c.vocab[t]; !ok {
				c.vocab[t] = len(df)
				df = append(df, 0)
			}
			if !inDoc[t] {
				df[c.vocab[t]]++
				inDoc[t] = true
			}
		}
	}

	// Smoothed inverse document frequency.
	n := float64(len(docs))
	c.idf = make([]float64, len(df))
	for t, count := range df {
		c.idf[t] = math.Log((1+n)/(1+float64(count))) + 1
	}

	// Accumulate per-class TF-IDF feature mass.
	featSum := make([][]float64, len(c.labels))
	for i := range featSum {
		featSum[i] = make([]float64, len(c.vocab))
	}
	classTotal := make([]float64, len(c.labels))
	classDocs := make([]float64, len(c.labels))

	for i, doc := range docs {
		label := labelIndex[doc.Label]
		classDocs[label]++
		for t, weight := range c.vectorize(tokenized[i]) {
			featSum[label][t] += weight
			classTotal[label] += weight
		}
	}

	c.logPrior = make([]float64, len(c.labels))
	c.logProb = make([][]float64, len(c.labels))
	vocabSize := float64(len(c.vocab))
	for label := range c.labels {
		c.logPrior[label] = math.Log(classDocs[label] / n)
		c.logProb[label] = make([]float64, len(c.vocab))
		for t := range c.logProb[label] {
			c.logProb[label][t] = math.Log(
				(featSum[label][t] + smoothing) / (classTotal[label] + smoothing*vocabSize))
		}
	}

	return c, nil
}

// Predict returns the most probable category label for the text. It fails
// only when no model has been fitted.
func (c *Classifier) Predict(text string) (string, error) {
	if c == nil || len(c.labels) == 0 {
		return "", models.ErrModelUnavailable
	}

	features := c.vectorize(tokenize(text))

	best := 0
	bestScore := math.Inf(-1)
	for label := range c.labels {
		score := c.logPrior[label]
		for t, weight := range features {
			score += weight * c.logProb[label][t]
		}
		if score > bestScore {
			best = label
			bestScore = score
		}
	}

	return c.labels[best], nil
}

// Labels returns the fitted category labels in training order.
func (c *Classifier) Labels() []string {
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}

// vectorize maps tokens onto an L2-normalized TF-IDF vector, keyed by
// vocabulary index. Tokens outside the vocabulary are dropped.
func (c *Classifier) vectorize(tokens []string) map[int]float64 {
	counts := make(map[int]float64)
	for _, token := range tokens {
		if t, ok := c.vocab[token]; ok {
			counts[t]++
		}
	}

	var norm float64
	for t := range counts {
		counts[t] *= c.idf[t]
		norm += counts[t] * counts[t]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for t := range counts {
			counts[t] /= norm
		}
	}

	return counts
}

func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}
