
package quiz

import (
	"math/rand"
	"strings"

	"mcquiz-server/models"
)

// AllTopics is the synthesized topic that draws from the whole bank.
const AllTopics = "All"

// QuestionsFor builds the randomized question sequence for one quiz run.
// "All" concatenates every topic's questions; any other topic is matched
// case-insensitively against the bank keys. An unknown topic yields an empty
// sequence, not an error.
//
// The returned slice is a fresh container so a restart never aliases a
// previous run, but the elements are the bank's own *Question pointers:
// caching an explanation on a drawn question must stay visible bank-wide.
func QuestionsFor(bank models.Bank, topic string, rng *rand.Rand) []*models.Question {
	var questions []*models.Question
	if topic == AllTopics {
		for _, topicQuestions := range bank {
			questions = append(questions, topicQuestions...)
		}
	} else {
		for name, topicQuestions := range bank {
			if strings.EqualFold(name, topic) {
				questions = append(questions, topicQuestions...)
				break
			}
		}
	}

	// Fisher-Yates over the copy; a fresh permutation per quiz start.
	rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	return questions
}
