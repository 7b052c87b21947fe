package flags

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestResolveSelection(t *testing.T) {
	testCases := []struct {
		name          string
		arguments     []string
		expected      Selection
		expectedError error
	}{
		{name: "AllFlag", arguments: []string{"--all"}, expected: Selection{All: true}},
		{name: "SingleName", arguments: []string{"--repos", "alpha"}, expected: Selection{Names: []string{"alpha"}}},
		{name: "NamesAfterFlag", arguments: []string{"--repos", "alpha", "beta", "gamma"}, expected: Selection{Names: []string{"alpha", "beta", "gamma"}}},
		{name: "CommaSeparated", arguments: []string{"--repos", "alpha,beta"}, expected: Selection{Names: []string{"alpha", "beta"}}},
		{name: "RepeatedAndDuplicated", arguments: []string{"--repos", "alpha", "--repos", "beta", "alpha"}, expected: Selection{Names: []string{"alpha", "beta"}}},
		{name: "Conflict", arguments: []string{"--repos", "alpha", "--all"}, expectedError: ErrSelectionConflict},
		{name: "Missing", arguments: []string{}, expectedError: ErrSelectionRequired},
		{name: "EmptyNames", arguments: []string{"--repos", " "}, expectedError: ErrSelectionRequired},
		{name: "PositionalWithoutRepos", arguments: []string{"alpha"}, expectedError: ErrUnexpectedArguments},
		{name: "PositionalWithAll", arguments: []string{"--all", "alpha"}, expectedError: ErrUnexpectedArguments},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			command := &cobra.Command{}
			values := BindSelectionFlags(command)

			require.NoError(t, command.ParseFlags(NormalizeToggleArguments(testCase.arguments)))
			selection, resolveError := ResolveSelection(command, values, command.Flags().Args())
			if testCase.expectedError != nil {
				require.ErrorIs(t, resolveError, testCase.expectedError)
				return
			}
			require.NoError(t, resolveError)
			require.Equal(t, testCase.expected, selection)
		})
	}
}

func TestBindSelectionFlagsParsesRootAndKeepGoing(t *testing.T) {
	command := &cobra.Command{}
	values := BindSelectionFlags(command)

	require.NoError(t, command.ParseFlags(NormalizeToggleArguments([]string{"--root", "/srv/mirrors", "--keep-going", "yes", "--all"})))
	require.Equal(t, "/srv/mirrors", values.Root)
	require.True(t, values.KeepGoing)
	require.Equal(t, "/srv/mirrors", Override(command, RootFlagName, values.Root, "./repos"))
	require.Equal(t, "fallback", Override(&cobra.Command{}, RootFlagName, "ignored", "fallback"))
}

func TestBindTokenFlagOnPersistentFlags(t *testing.T) {
	parent := &cobra.Command{Use: "parent"}
	child := &cobra.Command{Use: "child", Run: func(*cobra.Command, []string) {}}
	parent.AddCommand(child)

	var token string
	BindTokenFlag(parent.PersistentFlags(), &token)
	BindTokenFlag(parent.PersistentFlags(), &token)

	parent.SetArgs([]string{"child", "--token", "secret"})
	require.NoError(t, parent.Execute())
	require.Equal(t, "secret", token)
}

func TestBindRequiredTokenFlagRejectsMissingToken(t *testing.T) {
	testCases := []struct {
		name          string
		arguments     []string
		expectedToken string
		expectError   bool
	}{
		{name: "Provided", arguments: []string{"child", "--token", "secret"}, expectedToken: "secret"},
		{name: "ProvidedBeforeChild", arguments: []string{"--token", "secret", "child"}, expectedToken: "secret"},
		{name: "Missing", arguments: []string{"child"}, expectError: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			childRan := false
			parent := &cobra.Command{Use: "parent", SilenceErrors: true, SilenceUsage: true}
			child := &cobra.Command{Use: "child", Run: func(*cobra.Command, []string) { childRan = true }}
			parent.AddCommand(child)

			var token string
			require.NoError(t, BindRequiredTokenFlag(parent.PersistentFlags(), &token))
			require.Equal(t, RequiredTokenFlagUsage, parent.PersistentFlags().Lookup(TokenFlagName).Usage)

			parent.SetArgs(testCase.arguments)
			executionError := parent.Execute()
			if testCase.expectError {
				require.EqualError(t, executionError, `required flag(s) "token" not set`)
				require.False(t, childRan)
				return
			}
			require.NoError(t, executionError)
			require.True(t, childRan)
			require.Equal(t, testCase.expectedToken, token)
		})
	}
}
