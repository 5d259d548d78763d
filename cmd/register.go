package cmd

import (
	"github.com/spf13/cobra"

	"github.com/veriface/veriface/internal/flow"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account with face recognition",
	Long: `Register a new account against the face recognition service.
The command captures a photo from the local camera and submits it with
your identity details. Registering does not log you in.

Missing fields are prompted for interactively. Use --photo to submit an
existing image file instead of the camera.`,
	RunE: runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)

	registerCmd.Flags().String("first-name", "", "First name")
	registerCmd.Flags().String("last-name", "", "Last name")
	registerCmd.Flags().String("email", "", "Email address")
	registerCmd.Flags().String("phone", "", "Phone number")
	registerCmd.Flags().String("photo", "", "Submit an image file instead of capturing from the camera")
}

func runRegister(cmd *cobra.Command, args []string) error {
	form := flow.Form{
		FirstName: mustGetString(cmd, "first-name"),
		LastName:  mustGetString(cmd, "last-name"),
		Email:     mustGetString(cmd, "email"),
		Phone:     mustGetString(cmd, "phone"),
	}
	return runAuthCommand(cmd, flow.Registration, form)
}
