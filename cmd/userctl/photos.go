package main

import (
	"fmt"

	"github.com/hairizuan-noorazman/user-admin/user"
	"github.com/spf13/cobra"
)

func newPhotosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photos",
		Short: "Manage user photos",
	}

	cmd.AddCommand(newPhotosUploadCmd())
	return cmd
}

func newPhotosUploadCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a photo and print its URL, optionally setting it on a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := newLogger()
			w := cmd.OutOrStdout()

			if userID == "" {
				_, key, url, err := uploadPhotoFile(ctx, "", args[0])
				if err != nil {
					return err
				}
				if flagJSON {
					printJSON(w, map[string]string{"key": key, "url": url})
					return nil
				}
				printMessage(w, url)
				return nil
			}

			svc := newService(log)
			out := svc.FetchUserByID(ctx, userID)
			if err := outcomeError(cmd.ErrOrStderr(), out); err != nil {
				return err
			}
			current := *svc.Store().Snapshot().CurrentUser

			blobs, key, url, err := uploadPhotoFile(ctx, userID, args[0])
			if err != nil {
				return err
			}

			data, err := user.Apply(current.Data(), user.SetPhoto(url))
			if err != nil {
				return err
			}

			out = svc.UpdateUser(ctx, data.WithID(userID))
			if !out.Success {
				discardPhoto(ctx, log, blobs, key)
				return outcomeError(cmd.ErrOrStderr(), out)
			}

			if flagJSON {
				printJSON(w, map[string]string{"key": key, "url": url, "user": userID})
				return nil
			}
			printMessage(w, fmt.Sprintf("Photo of %s set to %s", current.FullName(), url))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Set the uploaded photo on this user")
	return cmd
}
