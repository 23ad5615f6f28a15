package main

import (
	"strings"

	"github.com/spf13/cobra"

	"qbank/internal/filterstate"
	"qbank/internal/query"
	"qbank/internal/tagstate"
)

// filterFlags are the ad-hoc filter options shared by list and export.
// They layer on top of the saved filter unless --no-saved-filter is given.
type filterFlags struct {
	search      string
	keywords    []string
	notKeywords []string
	topics      []string
	notTopics   []string
	paper       string
	year        string
	difficulty  string
	ignoreSaved bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.search, "search", "s", "", "Case-insensitive text matched against keywords, topics, and question number")
	flags.StringArrayVarP(&f.keywords, "keyword", "k", nil, "Require keyword (repeatable, all must match)")
	flags.StringArrayVar(&f.notKeywords, "not-keyword", nil, "Exclude records with keyword (repeatable)")
	flags.StringArrayVarP(&f.topics, "topic", "t", nil, "Require topic (repeatable, all must match)")
	flags.StringArrayVar(&f.notTopics, "not-topic", nil, "Exclude records with topic (repeatable)")
	flags.StringVar(&f.paper, "paper", "", "Paper type: 1, 2, or all")
	flags.StringVar(&f.year, "year", "", "Exam year, Unknown, or all")
	flags.StringVar(&f.difficulty, "difficulty", "", "Easy, Medium, Hard, or all")
	flags.BoolVar(&f.ignoreSaved, "no-saved-filter", false, "Ignore the saved filter")
}

// apply layers the flags over saved. Tag flags go through the tag state
// transitions, so a flag naming a tag the saved filter excludes moves it
// rather than producing an overlapping filter.
func (f *filterFlags) apply(saved filterstate.Saved) filterstate.Saved {
	if f.ignoreSaved {
		saved = filterstate.Saved{}
	}
	set := func(ns tagstate.Namespace, tags []string, class tagstate.Class) {
		for _, tag := range tags {
			if tag = strings.TrimSpace(tag); tag != "" {
				saved.Tags = saved.Tags.Set(ns, tag, class)
			}
		}
	}
	set(tagstate.Keywords, f.keywords, tagstate.Include)
	set(tagstate.Keywords, f.notKeywords, tagstate.Exclude)
	set(tagstate.Topics, f.topics, tagstate.Include)
	set(tagstate.Topics, f.notTopics, tagstate.Exclude)

	if f.search != "" {
		saved.Text = f.search
	}
	saved.PaperType = selector(saved.PaperType, f.paper)
	saved.Year = selector(saved.Year, f.year)
	saved.Difficulty = selector(saved.Difficulty, f.difficulty)
	return saved
}

// selector returns the new selector value for a flag: unchanged when the
// flag is empty, cleared for "all".
func selector(current, flag string) string {
	flag = strings.TrimSpace(flag)
	switch {
	case flag == "":
		return current
	case strings.EqualFold(flag, "all"):
		return ""
	default:
		return flag
	}
}

// resolveFilter loads the saved filter and layers the flags over it.
func (c *commandContext) resolveFilter(flags *filterFlags) (query.Filter, error) {
	saved := filterstate.Saved{}
	if !flags.ignoreSaved {
		state, err := c.filterState()
		if err != nil {
			return query.Filter{}, err
		}
		saved = state.Current()
	}
	return flags.apply(saved).Filter()
}
