package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hairizuan-noorazman/user-admin/logger"
	"github.com/hairizuan-noorazman/user-admin/storage"
	"github.com/hairizuan-noorazman/user-admin/user"
	"github.com/hairizuan-noorazman/user-admin/userstate"
	"github.com/spf13/cobra"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}

	cmd.AddCommand(newUsersListCmd())
	cmd.AddCommand(newUsersGetCmd())
	cmd.AddCommand(newUsersCreateCmd())
	cmd.AddCommand(newUsersUpdateCmd())
	cmd.AddCommand(newUsersDeleteCmd())
	cmd.AddCommand(newUsersSearchCmd())
	return cmd
}

func newUsersListCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of users",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newService(newLogger())

			out := svc.FetchUsers(cmd.Context(), page, getConfigLimit())
			if err := outcomeError(cmd.ErrOrStderr(), out); err != nil {
				return err
			}

			renderPage(cmd, svc.Store().Snapshot(), "")
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	return cmd
}

func newUsersSearchCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "search TERM",
		Short: "Filter one page of users by name or residence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newService(newLogger())

			out := svc.FetchUsers(cmd.Context(), page, getConfigLimit())
			if err := outcomeError(cmd.ErrOrStderr(), out); err != nil {
				return err
			}

			renderPage(cmd, svc.Store().Snapshot(), args[0])
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number to search")
	return cmd
}

func renderPage(cmd *cobra.Command, s userstate.State, term string) {
	w := cmd.OutOrStdout()
	users := userstate.FilterUsers(s.Users, term)

	if flagJSON {
		printJSON(w, userPage{Users: users, Pagination: s.Pagination})
		return
	}

	printUsers(w, users)
	printPagination(w, s.Pagination, len(users))
}

func newUsersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get a user by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newService(newLogger())

			out := svc.FetchUserByID(cmd.Context(), args[0])
			if err := outcomeError(cmd.ErrOrStderr(), out); err != nil {
				return err
			}

			renderUser(cmd, *svc.Store().Snapshot().CurrentUser)
			return nil
		},
	}
}

func renderUser(cmd *cobra.Command, u user.User) {
	if flagJSON {
		printJSON(cmd.OutOrStdout(), u)
		return
	}
	printUserDetail(cmd.OutOrStdout(), u)
}

// userFlags are the editable fields shared by create and update.
type userFlags struct {
	firstName string
	lastName  string
	height    float64
	weight    float64
	gender    string
	residence string
	photo     string
	photoFile string
}

func (f *userFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&f.lastName, "last-name", "", "Last name")
	cmd.Flags().Float64Var(&f.height, "height", 0, "Height in cm")
	cmd.Flags().Float64Var(&f.weight, "weight", 0, "Weight in kg")
	cmd.Flags().StringVar(&f.gender, "gender", "", "Gender (male, female, other)")
	cmd.Flags().StringVar(&f.residence, "residence", "", "Place of residence")
	cmd.Flags().StringVar(&f.photo, "photo", "", "Photo URL")
	cmd.Flags().StringVar(&f.photoFile, "photo-file", "", "Upload this image and use its URL as the photo")
	cmd.MarkFlagsMutuallyExclusive("photo", "photo-file")
}

// setters returns one setter per flag set on the command line.
func (f *userFlags) setters(cmd *cobra.Command) []user.UpdateSetter {
	var setters []user.UpdateSetter
	changed := cmd.Flags().Changed

	if changed("first-name") {
		setters = append(setters, user.SetFirstName(f.firstName))
	}
	if changed("last-name") {
		setters = append(setters, user.SetLastName(f.lastName))
	}
	if changed("height") {
		setters = append(setters, user.SetHeight(f.height))
	}
	if changed("weight") {
		setters = append(setters, user.SetWeight(f.weight))
	}
	if changed("gender") {
		setters = append(setters, user.SetGender(f.gender))
	}
	if changed("residence") {
		setters = append(setters, user.SetResidence(f.residence))
	}
	if changed("photo") {
		setters = append(setters, user.SetPhoto(f.photo))
	}
	return setters
}

func newUsersCreateCmd() *cobra.Command {
	var flags userFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := newLogger()
			svc := newService(log)

			data, err := user.Apply(user.CreateData{}, flags.setters(cmd)...)
			if err != nil {
				return err
			}

			var photoKey string
			var blobs storage.BlobStorage
			if flags.photoFile != "" {
				blobs, photoKey, data.Photo, err = uploadPhotoFile(ctx, "", flags.photoFile)
				if err != nil {
					return err
				}
			}

			out := svc.CreateUser(ctx, data)
			if !out.Success {
				discardPhoto(ctx, log, blobs, photoKey)
				return outcomeError(cmd.ErrOrStderr(), out)
			}

			created := lastUser(svc.Store().Snapshot())
			if flagJSON {
				printJSON(cmd.OutOrStdout(), created)
				return nil
			}
			printMessage(cmd.OutOrStdout(), fmt.Sprintf("%s: %s (%s)", out.Message, created.FullName(), created.ID))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func lastUser(s userstate.State) user.User {
	if len(s.Users) == 0 {
		return user.User{}
	}
	return s.Users[len(s.Users)-1]
}

func newUsersUpdateCmd() *cobra.Command {
	var flags userFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a user; unset fields keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := newLogger()
			svc := newService(log)
			id := args[0]

			out := svc.FetchUserByID(ctx, id)
			if err := outcomeError(cmd.ErrOrStderr(), out); err != nil {
				return err
			}
			current := *svc.Store().Snapshot().CurrentUser

			data, err := user.Apply(current.Data(), flags.setters(cmd)...)
			if err != nil {
				return err
			}

			var photoKey string
			var blobs storage.BlobStorage
			if flags.photoFile != "" {
				blobs, photoKey, data.Photo, err = uploadPhotoFile(ctx, id, flags.photoFile)
				if err != nil {
					return err
				}
			}

			out = svc.UpdateUser(ctx, data.WithID(id))
			if !out.Success {
				discardPhoto(ctx, log, blobs, photoKey)
				return outcomeError(cmd.ErrOrStderr(), out)
			}

			updated := *svc.Store().Snapshot().CurrentUser
			if flagJSON {
				printJSON(cmd.OutOrStdout(), updated)
				return nil
			}
			printMessage(cmd.OutOrStdout(), fmt.Sprintf("%s: %s (%s)", out.Message, updated.FullName(), updated.ID))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newUsersDeleteCmd() *cobra.Command {
	var page int
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a user and show the page it was on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc := newService(newLogger())
			id := args[0]

			out := svc.FetchUsers(ctx, page, getConfigLimit())
			if err := outcomeError(cmd.ErrOrStderr(), out); err != nil {
				return err
			}

			if !confirmAction(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete user %s?", id), yes) {
				printMessage(cmd.OutOrStdout(), "Aborted")
				return nil
			}

			out = svc.DeleteUserAndRepaginate(ctx, id)
			if err := outcomeError(cmd.ErrOrStderr(), out); err != nil {
				return err
			}

			s := svc.Store().Snapshot()
			if flagJSON {
				printJSON(cmd.OutOrStdout(), userPage{Users: s.Users, Pagination: s.Pagination})
				return nil
			}
			printMessage(cmd.OutOrStdout(), out.Message)
			if s.HasError() {
				printMessage(cmd.ErrOrStderr(), "Refreshing the list failed: "+s.Error)
				return nil
			}
			printUsers(cmd.OutOrStdout(), s.Users)
			printPagination(cmd.OutOrStdout(), s.Pagination, len(s.Users))
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page the user is listed on")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

// uploadPhotoFile stores the image at path and returns the storage it went
// to, its key and its URL.
func uploadPhotoFile(ctx context.Context, owner, path string) (storage.BlobStorage, string, string, error) {
	blobs, err := storage.New(ctx, getStorageConfig())
	if err != nil {
		return nil, "", "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to open photo: %w", err)
	}
	defer f.Close()

	key, url, err := storage.UploadPhoto(ctx, blobs, owner, filepath.Base(path), f)
	if err != nil {
		return nil, "", "", err
	}
	return blobs, key, url, nil
}

// discardPhoto removes a photo uploaded for a request that then failed.
func discardPhoto(ctx context.Context, log logger.Logger, blobs storage.BlobStorage, key string) {
	if blobs == nil || key == "" {
		return
	}
	if err := blobs.Delete(ctx, key); err != nil {
		log.Warn(ctx, "failed to remove unused photo", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

