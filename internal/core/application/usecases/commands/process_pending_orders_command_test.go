package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/require"
)

func TestNewProcessPendingOrdersCommand(t *testing.T) {
	cmd := commands.NewProcessPendingOrdersCommand()
	require.NoError(t, cmd.Validate())
}

func TestProcessPendingOrdersCommand_NotConstructedViaConstructor(t *testing.T) {
	var cmd commands.ProcessPendingOrdersCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrProcessPendingOrdersCommandIsNotConstructed)
}
