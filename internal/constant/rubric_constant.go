package constant

// DefaultRubric is used when no rubric file accompanies a query.
const DefaultRubric = `SaiL merges arts, technology, and social impact to unite and inspire humanity through entertaining and transformative storytelling.

In an era characterized by a fragmented and often polarizing media landscape, the studio operates on a central, guiding principle: the cultivation of Actionable Hope. This goes beyond passive inspiration and focuses on empowering audiences with clarity and motivation to create change.

Each project functions as the epicenter of a potential movement. Stories are developed alongside strategies for real-world engagement—such as partnerships, community resources, or platforms for dialogue—transforming audiences from passive viewers into active participants.

Evaluation Questions:
- Does the story have a positive message?
- Does the story uplift and inspire?
- Does the story align with the Heroine's Journey?
- Does the story address a critical problem worth solving?
- Is there potential for measurable impact?
- Is the story commercially viable? (not a deciding factor alone)
- Do the author(s) align with the studio's mission?`
