package cmd

import (
	"github.com/spf13/cobra"

	"github.com/veriface/veriface/internal/flow"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with face recognition",
	Long: `Log in against the face recognition service.
The command captures a photo from the local camera and submits it with
your email address. On a match the service returns your profile.

Missing fields are prompted for interactively. Use --photo to submit an
existing image file instead of the camera.`,
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().String("email", "", "Email address of the account")
	loginCmd.Flags().String("photo", "", "Submit an image file instead of capturing from the camera")
}

func runLogin(cmd *cobra.Command, args []string) error {
	form := flow.Form{
		Email: mustGetString(cmd, "email"),
	}
	return runAuthCommand(cmd, flow.Login, form)
}
