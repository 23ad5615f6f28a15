package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"qbank/internal/library"
	"qbank/internal/question"
)

func newEditCommand(ctx *commandContext) *cobra.Command {
	var (
		meta           metadataFlags
		questionImage  string
		answerChoice   string
		answerImage    string
		parts          []string
		partLabels     []string
		addKeywords    []string
		removeKeywords []string
		addTopics      []string
		removeTopics   []string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a question",
		Long: `Change fields of a question. Only the given flags change; the record is
then saved in full.

  qbank edit 3f2a --add-topic B.4 --remove-keyword wave --year 2021
  qbank edit 3f2a --part qc.png:ac.png --part-label 2=b(ii)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(cmd, func(runCtx context.Context, lib *library.Library) error {
				id, err := resolveID(runCtx, lib, args[0])
				if err != nil {
					return err
				}
				rec, err := lib.Get(runCtx, id)
				if err != nil {
					return err
				}

				if err := meta.applyTo(cmd, &rec); err != nil {
					return err
				}
				rec.Keywords = mergeTags(rec.Keywords, addKeywords, removeKeywords)
				rec.Topics = mergeTags(rec.Topics, addTopics, removeTopics)

				switch rec.PaperType {
				case question.PaperOne:
					if len(parts) > 0 || len(partLabels) > 0 {
						return errors.New("Paper 1 questions have no parts")
					}
					if questionImage != "" {
						if rec.QuestionImage, err = lib.Images().Import(questionImage); err != nil {
							return err
						}
					}
					if err := setAnswer(lib.Images(), &rec, answerChoice, answerImage); err != nil {
						return err
					}
				case question.PaperTwo:
					if questionImage != "" || answerChoice != "" || answerImage != "" {
						return errors.New("Paper 2 questions take --part instead of --question-image and answer flags")
					}
					if rec.Parts, err = importParts(lib.Images(), rec.Parts, parts); err != nil {
						return err
					}
					if err := relabelParts(rec.Parts, partLabels); err != nil {
						return err
					}
				}

				if err := lib.Save(runCtx, rec); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated question %s\n", rec.ID)
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&questionImage, "question-image", "", "Replace the question image (Paper 1)")
	flags.StringVar(&answerChoice, "answer-choice", "", "Set a multiple-choice answer A-D (Paper 1)")
	flags.StringVar(&answerImage, "answer-image", "", "Set an answer image (Paper 1)")
	flags.StringArrayVar(&parts, "part", nil, "Append a QUESTION_IMAGE:ANSWER_IMAGE part (Paper 2, repeatable)")
	flags.StringArrayVar(&partLabels, "part-label", nil, "Relabel a part as INDEX=LABEL, 1-based (Paper 2, repeatable)")
	flags.StringArrayVar(&addKeywords, "add-keyword", nil, "Add a keyword (repeatable)")
	flags.StringArrayVar(&removeKeywords, "remove-keyword", nil, "Remove a keyword (repeatable)")
	flags.StringArrayVar(&addTopics, "add-topic", nil, "Add a topic (repeatable)")
	flags.StringArrayVar(&removeTopics, "remove-topic", nil, "Remove a topic (repeatable)")
	meta.register(cmd)
	return cmd
}
