package nats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_Subject(t *testing.T) {
	c := &Client{subjectPrefix: DefaultSubjectPrefix}
	assert.Equal(t, "tasks.task.created", c.Subject("task.created"))
}

func TestClient_CloseWithoutConnection(t *testing.T) {
	assert.NoError(t, (&Client{}).Close())
}
