package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageConstructors(t *testing.T) {
	sys := SystemMessage("be terse")
	assert.Equal(t, RoleSystem, sys.Role)
	assert.Equal(t, "be terse", sys.Content)

	user := UserMessage("hello")
	assert.Equal(t, RoleUser, user.Role)

	ai := AssistantMessage("hi")
	assert.Equal(t, RoleAssistant, ai.Role)

	tool := ToolMessage("calculator", "42")
	assert.Equal(t, RoleTool, tool.Role)
	assert.Equal(t, "calculator", tool.Name)
	assert.Equal(t, "42", tool.Content)
}

func TestNewTokenUsage(t *testing.T) {
	u := NewTokenUsage(10, 5)
	assert.Equal(t, 10, u.InputTokens)
	assert.Equal(t, 5, u.OutputTokens)
	assert.Equal(t, 15, u.TotalTokens)
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "fallback", OrDefault("", "fallback"))
	assert.Equal(t, "value", OrDefault("value", "fallback"))
	assert.Equal(t, 7, OrDefault(0, 7))

	v := 0.3
	assert.Equal(t, 0.3, OrDefaultPtr(&v, 0.7))
	assert.Equal(t, 0.7, OrDefaultPtr(nil, 0.7))
}

func TestFirstChars(t *testing.T) {
	assert.Equal(t, "abc", FirstChars("abcdef", 3))
	assert.Equal(t, "ab", FirstChars("ab", 5))
	assert.Equal(t, "héll", FirstChars("héllo", 4))
}
