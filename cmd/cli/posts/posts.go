package posts

import (
	"fmt"
	"time"

	"github.com/sbelkacem/gosocial/cmd/cli/client"
	"github.com/sbelkacem/gosocial/cmd/cli/output"
	"github.com/spf13/cobra"
)

type post struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Init registers post management commands on the root command.
func Init(rootCmd *cobra.Command) {
	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "Manage your posts",
	}
	postsCmd.AddCommand(createCmd())
	postsCmd.AddCommand(listCmd())
	postsCmd.AddCommand(updateCmd())
	postsCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(postsCmd)
}

func createCmd() *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new post",
		RunE: func(cmd *cobra.Command, args []string) error {
			var out struct {
				Message string `json:"message"`
				Post    post   `json:"post"`
			}
			if _, err := client.Do("POST", "/posts", map[string]string{"text": text}, &out); err != nil {
				return fmt.Errorf("failed to create post: %w", err)
			}
			fmt.Printf("Created post %d.\n", out.Post.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text of the post")
	cmd.MarkFlagRequired("text")

	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			var out struct {
				Items []post `json:"items"`
				Total int    `json:"total"`
			}
			if _, err := client.Do("GET", "/posts", nil, &out); err != nil {
				return fmt.Errorf("failed to list posts: %w", err)
			}

			rows := make([][]interface{}, 0, len(out.Items))
			for _, p := range out.Items {
				rows = append(rows, []interface{}{p.ID, p.Text, p.CreatedAt.Format(time.RFC3339)})
			}
			output.RenderTable([]string{"ID", "Text", "Created"}, rows)
			fmt.Printf("%d post(s)\n", out.Total)
			return nil
		},
	}
}

func updateCmd() *cobra.Command {
	var id int
	var text string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Replace the text of one of your posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			var out struct {
				Message     string `json:"message"`
				UpdatedPost post   `json:"updatedPost"`
			}
			path := fmt.Sprintf("/posts/%d", id)
			if _, err := client.Do("PUT", path, map[string]string{"text": text}, &out); err != nil {
				return fmt.Errorf("failed to update post: %w", err)
			}
			fmt.Printf("Updated post %d.\n", out.UpdatedPost.ID)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "ID of the post to update")
	cmd.Flags().StringVar(&text, "text", "", "Replacement text")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("text")

	return cmd
}

func deleteCmd() *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete one of your posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			var out struct {
				Message     string `json:"message"`
				DeletedPost post   `json:"deletedPost"`
			}
			path := fmt.Sprintf("/posts/%d", id)
			if _, err := client.Do("DELETE", path, nil, &out); err != nil {
				return fmt.Errorf("failed to delete post: %w", err)
			}
			fmt.Printf("Deleted post %d.\n", out.DeletedPost.ID)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "ID of the post to delete")
	cmd.MarkFlagRequired("id")

	return cmd
}
