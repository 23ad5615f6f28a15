package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"qbank/internal/filterstate"
	"qbank/internal/library"
	"qbank/internal/logging"
	"qbank/internal/question"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var (
		meta          metadataFlags
		paper         string
		questionImage string
		answerChoice  string
		answerImage   string
		parts         []string
		keywords      []string
		topics        []string
		noSticky      bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a question",
		Long: `Add a question to the bank.

Paper 1 questions take one question image and either a multiple-choice
answer or an answer image:

  qbank add --paper 1 --question-image q.png --answer-choice B -k waves

Paper 2 questions take one or more parts, labelled a, b, c... in order:

  qbank add --paper 2 --part qa.png:aa.png --part qb.png:ab.png -t B.4

Difficulty, year, and month default to the values of the previously
added question unless --no-sticky is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paperType, err := question.ParsePaperType(paper)
			if err != nil {
				return err
			}
			if err := checkAddFlags(paperType, questionImage, answerChoice, answerImage, parts); err != nil {
				return err
			}

			rec := question.New(paperType)
			if !noSticky {
				ctx.seedSticky(&rec)
			}
			if err := meta.applyTo(cmd, &rec); err != nil {
				return err
			}
			rec.Keywords = mergeTags(rec.Keywords, keywords, nil)
			rec.Topics = mergeTags(rec.Topics, topics, nil)

			return ctx.withLibrary(cmd, func(runCtx context.Context, lib *library.Library) error {
				switch paperType {
				case question.PaperOne:
					ref, err := lib.Images().Import(questionImage)
					if err != nil {
						return err
					}
					rec.QuestionImage = ref
					if err := setAnswer(lib.Images(), &rec, answerChoice, answerImage); err != nil {
						return err
					}
				case question.PaperTwo:
					if rec.Parts, err = importParts(lib.Images(), nil, parts); err != nil {
						return err
					}
				}
				if err := lib.Save(runCtx, rec); err != nil {
					return err
				}
				ctx.rememberSticky(rec)
				fmt.Fprintf(cmd.OutOrStdout(), "Added question %s\n", rec.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&paper, "paper", "p", "", "Paper type: 1 or 2 (required)")
	cmd.Flags().StringVar(&questionImage, "question-image", "", "Question image file (Paper 1)")
	cmd.Flags().StringVar(&answerChoice, "answer-choice", "", "Multiple-choice answer A-D (Paper 1)")
	cmd.Flags().StringVar(&answerImage, "answer-image", "", "Answer image file (Paper 1)")
	cmd.Flags().StringArrayVar(&parts, "part", nil, "QUESTION_IMAGE:ANSWER_IMAGE for a Paper 2 part (repeatable)")
	cmd.Flags().StringArrayVarP(&keywords, "keyword", "k", nil, "Keyword (repeatable)")
	cmd.Flags().StringArrayVarP(&topics, "topic", "t", nil, "Topic (repeatable)")
	cmd.Flags().BoolVar(&noSticky, "no-sticky", false, "Ignore the metadata of the previously added question")
	meta.register(cmd)
	_ = cmd.MarkFlagRequired("paper")
	return cmd
}

func checkAddFlags(paperType question.PaperType, questionImage, answerChoice, answerImage string, parts []string) error {
	switch paperType {
	case question.PaperOne:
		if len(parts) > 0 {
			return errors.New("--part is only valid for Paper 2 questions")
		}
		if questionImage == "" {
			return errors.New("Paper 1 questions need --question-image")
		}
		if answerChoice == "" && answerImage == "" {
			return errors.New("Paper 1 questions need --answer-choice or --answer-image")
		}
	case question.PaperTwo:
		if questionImage != "" || answerChoice != "" || answerImage != "" {
			return errors.New("Paper 2 questions take --part instead of --question-image and answer flags")
		}
		if len(parts) == 0 {
			return errors.New("Paper 2 questions need at least one --part")
		}
	}
	return nil
}

// seedSticky applies the metadata remembered from the last add. Load
// failures are logged and leave rec unchanged.
func (c *commandContext) seedSticky(rec *question.Record) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return
	}
	sticky, err := filterstate.LoadSticky(cfg.StickyPath())
	if err != nil {
		logging.WarnWithContext(c.appLogger(), "sticky metadata unreadable", "sticky_load_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "delete "+cfg.StickyPath()),
			logging.String(logging.FieldImpact, "form defaults are used"))
		return
	}
	sticky.Seed(rec)
}

func (c *commandContext) rememberSticky(rec question.Record) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return
	}
	if err := filterstate.SaveSticky(cfg.StickyPath(), filterstate.StickyFrom(rec)); err != nil {
		logging.WarnWithContext(c.appLogger(), "sticky metadata not saved", "sticky_save_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "the next add starts from form defaults"))
	}
}
