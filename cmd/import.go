package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/studiz/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import [files...]",
	Short: "Import study material",
	Long: `Import text or markdown files as study documents, or register a
course with its concepts. Question generation draws on imported
material when the selected topics match.

  studiz import notes.md chapter2.md --topic biology
  studiz import --course "Biology 101" --concepts "cell energy,photosynthesis"`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("topic", "", "Topic the imported documents belong to")
	importCmd.Flags().String("title", "", "Document title (single file only; defaults to the file name)")
	importCmd.Flags().String("course", "", "Register a course instead of importing files")
	importCmd.Flags().String("description", "", "Course description")
	importCmd.Flags().String("concepts", "", "Comma-separated course concepts")
}

func runImport(cmd *cobra.Command, args []string) error {
	course, _ := cmd.Flags().GetString("course")
	if course != "" {
		if len(args) > 0 {
			return fmt.Errorf("--course does not take file arguments")
		}
		return importCourse(cmd, course)
	}

	if len(args) == 0 {
		return fmt.Errorf("nothing to import: pass files or --course")
	}
	topic, _ := cmd.Flags().GetString("topic")
	if topic == "" {
		return fmt.Errorf("--topic is required when importing files")
	}
	title, _ := cmd.Flags().GetString("title")
	if title != "" && len(args) > 1 {
		return fmt.Errorf("--title only applies to a single file")
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	content := st.ContentRepo()
	ctx := context.Background()

	for _, path := range args {
		doc, err := readDocument(path, topic, title)
		if err != nil {
			return err
		}
		if err := content.PutDocument(ctx, doc); err != nil {
			return fmt.Errorf("store %s: %w", path, err)
		}
		fmt.Printf("Imported %q (%d bytes) into topic %q\n", doc.Title, len(doc.Content), topic)
	}
	return nil
}

// readDocument loads one file into a DocumentRecord. The DocID is
// derived from the absolute path so re-importing replaces the earlier
// copy instead of duplicating it.
func readDocument(path, topic, title string) (store.DocumentRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return store.DocumentRecord{}, fmt.Errorf("read %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return store.DocumentRecord{}, fmt.Errorf("%s is empty", path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if title == "" {
		base := filepath.Base(path)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return store.DocumentRecord{
		DocID:      uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+abs)).String(),
		Title:      title,
		Topic:      topic,
		Content:    string(data),
		SourcePath: abs,
		CreatedAt:  time.Now(),
	}, nil
}

func importCourse(cmd *cobra.Command, name string) error {
	description, _ := cmd.Flags().GetString("description")
	conceptsFlag, _ := cmd.Flags().GetString("concepts")

	var concepts []string
	for _, c := range strings.Split(conceptsFlag, ",") {
		if c = strings.TrimSpace(c); c != "" {
			concepts = append(concepts, c)
		}
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	err = st.ContentRepo().PutCourse(context.Background(), store.CourseRecord{
		Name:        name,
		Description: description,
		Concepts:    concepts,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return fmt.Errorf("store course: %w", err)
	}
	fmt.Printf("Registered course %q with %d concepts\n", name, len(concepts))
	return nil
}
