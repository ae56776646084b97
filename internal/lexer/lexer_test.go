package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeWordsAndNewlines(t *testing.T) {
	toks, err := New("t.ath", "DEPLOYMENT-ID DEMO\nSERVICES SECTION").Tokenize()
	require.NoError(t, err)

	var kinds []Kind
	var values []string
	for _, tok := range toks {
		if tok.Kind == EOF {
			continue
		}
		kinds = append(kinds, tok.Kind)
		values = append(values, tok.Value)
	}

	assert.Equal(t, []Kind{Word, Word, Newline, Word, Word}, kinds)
	assert.Equal(t, []string{"DEPLOYMENT-ID", "DEMO", "\n", "SERVICES", "SECTION"}, values)
}

func TestTokenizeImageRefAsSingleWord(t *testing.T) {
	toks, err := New("t.ath", "IMAGE-ID postgres:15-alpine").Tokenize()
	require.NoError(t, err)
	require.Len(t, toks, 3) // IMAGE-ID, value, EOF
	assert.Equal(t, "postgres:15-alpine", toks[1].Value)
}

func TestTokenizeNumberWithUnit(t *testing.T) {
	toks, err := New("t.ath", "RESOURCE-LIMITS 0.5 512M").Tokenize()
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, Number, toks[1].Kind)
	assert.Equal(t, "0.5", toks[1].Value)
	assert.Equal(t, Number, toks[2].Kind)
	assert.Equal(t, "512M", toks[2].Value)
}

func TestTokenizeTemplateAndString(t *testing.T) {
	toks, err := New("t.ath", `ENV-VARIABLE {{DB_HOST}}`).Tokenize()
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, Template, toks[1].Kind)
	assert.Equal(t, "DB_HOST", toks[1].Value)

	toks, err = New("t.ath", `COMMAND "npm start"`).Tokenize()
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, String, toks[1].Kind)
	assert.Equal(t, "npm start", toks[1].Value)
}

func TestTokenizeCommentsAreSkipped(t *testing.T) {
	toks, err := New("t.ath", "# a comment\nIMAGE-ID nginx /* inline */ \n").Tokenize()
	require.NoError(t, err)
	var words []string
	for _, tok := range toks {
		if tok.Kind == Word {
			words = append(words, tok.Value)
		}
	}
	assert.Equal(t, []string{"IMAGE-ID", "nginx"}, words)
}

func TestTokenizeUnterminatedStringErrors(t *testing.T) {
	_, err := New("t.ath", `COMMAND "npm start`).Tokenize()
	assert.Error(t, err)
}

func TestTokenizeUnterminatedTemplateErrors(t *testing.T) {
	_, err := New("t.ath", `ENV-VARIABLE {{DB_HOST`).Tokenize()
	assert.Error(t, err)
}
