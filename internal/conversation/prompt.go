package conversation

import (
	"fmt"
	"strings"

	"github.com/abhisek/interviewx/internal/language"
	"github.com/abhisek/interviewx/internal/profile"
)

// TerminationPhrase is what the candidate types to finish the interview.
const TerminationPhrase = "End Interview"

// OpeningInstruction is the hidden control message that makes the
// interviewer introduce themselves. It is never shown as a turn.
const OpeningInstruction = "Please begin the interview now by introducing yourself and asking your first question."

// FeedbackPrompt asks for the closing report. Its three sections are
// introduced with the feedback marker.
const FeedbackPrompt = `The candidate has concluded the interview by stating "` + TerminationPhrase + `". Based on our entire conversation history, please generate a comprehensive, narrative-style feedback report. Do not ask any more questions or continue the interview.

The report must be in the same language as the interview and have the following sections, clearly titled with "###":

### Overall Assessment
Provide a summary of the candidate's performance, suitability for the role, and cultural fit with the company.

### Key Strengths
List 2-3 specific strengths, providing direct examples or paraphrasing from the candidate's answers to support your points.

### Areas for Improvement
List 2-3 specific areas where the candidate could improve, again using concrete examples from the interview. Suggest actionable advice.

Your tone should be professional, constructive, and encouraging. Address the candidate directly in the second person (e.g., "Your response to...").`

var tierDirectives = map[profile.Tier]string{
	profile.Beginner: "Keep the questions foundational and straightforward. Focus on getting to know the candidate's " +
		"background and basic qualifications. Ask about their resume and their motivation for the role.",
	profile.Intermediate: "The questions should be more challenging, requiring the candidate to provide specific examples " +
		"and demonstrate deeper problem-solving skills (e.g., using the STAR method). Introduce one or two behavioral questions.",
	profile.Advanced: "The interview should be tough, simulating a final-round or executive interview. Ask complex, " +
		"multi-part questions, challenge the candidate's assumptions, and probe deeply into their strategic thinking. " +
		"Include situational and case-study style questions.",
}

// BuildSystemPrompt renders the interviewer persona for the given
// parameters. The output depends only on its inputs. Unknown tiers get the
// beginner directive.
func BuildSystemPrompt(p Params, languageCode string, tier profile.Tier) string {
	directive, ok := tierDirectives[tier]
	if !ok {
		tier = profile.Beginner
		directive = tierDirectives[profile.Beginner]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert hiring manager at %s. Your name is Alex. ", p.CompanyName)
	fmt.Fprintf(&b, "You are conducting a job interview for the %s position. ", p.JobRole)
	fmt.Fprintf(&b, "Your goal is to assess the candidate's skills, experience, and cultural fit for %s.\n\n", p.CompanyName)

	fmt.Fprintf(&b, "Your entire conversation, including all questions and responses, MUST be in %s.\n\n", language.Name(languageCode))

	fmt.Fprintf(&b, "The candidate's current skill level is %s. You must tailor the interview difficulty accordingly. %s\n\n",
		tier.Label(), directive)

	fmt.Fprintf(&b, "Use the company's official website (%s) as context for its mission, values, products, and culture. ", p.CompanyURL)
	b.WriteString("Do not invent facts about the company that you cannot support; when unsure, ask the candidate instead. ")
	b.WriteString("Let the company's culture shape your tone and the kind of questions you ask.\n\n")

	b.WriteString("Begin the interview by introducing yourself and your role, then ask a strong, relevant opening question. ")
	b.WriteString("Wait for the candidate's response before asking a logical follow-up. Maintain the context of the conversation. ")
	b.WriteString("Do not break character. Do not mention that you are an AI. ")
	b.WriteString("When the candidate skips a question, acknowledge it briefly and move to the next logical question.\n\n")

	fmt.Fprintf(&b, "The interview will consist of 3-5 questions. The candidate will signal the end of the interview by typing '%s'.", TerminationPhrase)

	return b.String()
}
