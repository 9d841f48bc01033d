package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/laban/internal/llm"
	"github.com/abhisek/laban/internal/study"
)

func TestChatLoop(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("Mình hiểu cảm giác đó."))
	chat := study.NewService(mock, study.DefaultConfig(), nil).NewChat()

	var out bytes.Buffer
	err := chatLoop(context.Background(), chat, strings.NewReader("\nHôm nay mình mệt quá\n/quit\nkhông tới đây\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Laban: Mình hiểu cảm giác đó.")
	assert.Len(t, chat.History(), 2)
}

func TestChatLoopCrisisWithoutProvider(t *testing.T) {
	chat := study.NewService(nil, study.DefaultConfig(), nil).NewChat()

	var out bytes.Buffer
	require.NoError(t, chatLoop(context.Background(), chat, strings.NewReader("mình muốn chết\n"), &out))
	assert.Contains(t, out.String(), study.HotlineNotice)
}
