package prompts

const analysisSpec = `Respond with a JSON object matching this exact structure:

{
  "impact_score": <integer from -3 to 3>,
  "sentiment": "<one of: VERY_NEGATIVE, NEGATIVE, NEUTRAL, POSITIVE, VERY_POSITIVE>",
  "reliability": <number from 0 to 1>,
  "reasons": ["reason 1", "reason 2"],
  "explanation": "<2-3 sentences explaining the score>"
}

Field constraints:
- impact_score: Integer impact rating. Negative values indicate the
  regulation harms the company, positive values indicate it benefits
  the company.
- sentiment: Categorical band consistent with the impact score.
- reliability: Your confidence in the assessment given the information
  available in the company profile.
- reasons: At most two short reasons supporting the score.
- explanation: Brief narrative justification of the score.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Return ONLY the JSON object, no other text`
