package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csc-gandhinagar/stipend-flow/internal/model"
)

func reviewQueue() []model.Applicant {
	mk := func(id int, name, roll string) model.Applicant {
		fields := map[string]string{
			"Full Name":   name,
			"Roll Number": roll,
			"Birth Place": "Outside But Have Domicile",
		}
		return model.Applicant{ID: id, Status: model.StatusReview, Fields: fields, OriginalFields: fields}
	}
	return []model.Applicant{mk(1, "Amit", "101"), mk(2, "Bina", "102"), mk(3, "Chirag", "103")}
}

func TestReviewQueueDecisions(t *testing.T) {
	input := strings.NewReader("a\nlooks fine\nr\n\ns\n")
	var output bytes.Buffer

	p := NewReviewPrompter(input, &output)
	decisions, err := p.ReviewQueue(context.Background(), reviewQueue())
	require.NoError(t, err)

	require.Len(t, decisions, 2)
	assert.Equal(t, Decision{ID: 1, Status: model.StatusApproved, Remark: "looks fine"}, decisions[0])
	assert.Equal(t, Decision{ID: 2, Status: model.StatusRejected}, decisions[1])

	out := output.String()
	assert.Contains(t, out, "Application Review (1 of 3)")
	assert.Contains(t, out, "Amit")
}

func TestReviewQueueQuitKeepsEarlierDecisions(t *testing.T) {
	input := strings.NewReader("approve\n\nq\n")
	var output bytes.Buffer

	p := NewReviewPrompter(input, &output)
	decisions, err := p.ReviewQueue(context.Background(), reviewQueue())
	require.NoError(t, err)

	require.Len(t, decisions, 1)
	assert.Equal(t, 1, decisions[0].ID)
}

func TestReviewQueueUnknownInputReprompts(t *testing.T) {
	input := strings.NewReader("x\ns\nq\n")
	var output bytes.Buffer

	p := NewReviewPrompter(input, &output)
	decisions, err := p.ReviewQueue(context.Background(), reviewQueue())
	require.NoError(t, err)

	assert.Empty(t, decisions)
	assert.Contains(t, output.String(), "Please answer a, r, s or q")
}

func TestReviewQueueEOFQuits(t *testing.T) {
	p := NewReviewPrompter(strings.NewReader(""), &bytes.Buffer{})
	decisions, err := p.ReviewQueue(context.Background(), reviewQueue())
	require.NoError(t, err)
	assert.Empty(t, decisions)
}

func TestReviewQueueEmpty(t *testing.T) {
	p := NewReviewPrompter(strings.NewReader(""), &bytes.Buffer{})
	decisions, err := p.ReviewQueue(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, decisions)
}

func TestReviewQueueCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewReviewPrompter(strings.NewReader("a\n\n"), &bytes.Buffer{})
	_, err := p.ReviewQueue(ctx, reviewQueue())
	assert.ErrorIs(t, err, context.Canceled)
}
