package fallback

import "time"

// FollowUp is one selectable follow-up answer. Triggers are either a digit
// (the option number) or a keyword; numeric selections resolve against the
// digit triggers, keyword selections by substring match in declaration order.
type FollowUp struct {
	Trigger  string
	Response string
}

// Entry is one canned answer keyed by a lowercase phrase. Declaration order
// is the match order: the resolver scans entries top to bottom and the first
// keyword contained in the message wins.
type Entry struct {
	Keyword   string
	Response  string
	FollowUps []FollowUp
}

const (
	genAIDetail = "Generative AI and large language models (like GPT-4) are transforming how we create and interact with content. They can generate human-like text, translate languages, write code, and more. These models are being integrated into various applications, from customer service to content creation."

	automationDetail = "AI-powered automation is revolutionizing industries by handling repetitive tasks with high accuracy and speed. Key applications include:\n\n1. **Robotic Process Automation (RPA)**: Automating rule-based tasks in business processes.\n2. **Intelligent Document Processing**: Extracting and processing information from documents.\n3. **Customer Service**: Chatbots and virtual assistants handling routine inquiries.\n4. **Manufacturing**: Predictive maintenance and quality control.\n5. **Supply Chain**: Optimizing logistics and inventory management."

	healthcareDetail = "AI in healthcare is transforming patient care and medical research:\n\n1. **Diagnosis**: AI can analyze medical images and patient data to assist in diagnosis.\n2. **Drug Discovery**: Accelerating the development of new medications.\n3. **Personalized Medicine**: Tailoring treatments to individual patients.\n4. **Wearables**: Monitoring patient health in real-time.\n5. **Administrative Tasks**: Automating scheduling and documentation."

	ethicsDetail = "Ethical AI and regulations are becoming increasingly important as AI becomes more prevalent:\n\n1. **Bias and Fairness**: Ensuring AI systems don't discriminate.\n2. **Transparency**: Making AI decision-making processes understandable.\n3. **Privacy**: Protecting user data and ensuring compliance with regulations like GDPR.\n4. **Accountability**: Determining responsibility for AI decisions.\n5. **Regulations**: Governments worldwide are developing frameworks to govern AI use."

	securityDetail = "AI-powered cybersecurity is essential for defending against increasingly sophisticated threats:\n\n1. **Threat Detection**: Identifying potential security breaches in real-time.\n2. **Anomaly Detection**: Spotting unusual behavior that might indicate an attack.\n3. **Automated Response**: Quickly containing and mitigating threats.\n4. **Phishing Prevention**: Detecting and blocking phishing attempts.\n5. **Vulnerability Management**: Identifying and patching security weaknesses."

	helpMoviesDetail = "For the latest movies and TV shows, you can ask me about:\n- Current box office hits\n- Top-rated movies\n- Upcoming releases\n- Popular TV series\n- Or ask for recommendations!"

	helpTechDetail = "For technology trends, you can ask about:\n- Latest AI developments\n- New gadgets and devices\n- Programming and software\n- Tech industry news\n- Future technology predictions"

	helpKnowledgeDetail = "For general knowledge, you can ask about:\n- Historical events\n- Science and nature\n- Geography and cultures\n- Arts and literature\n- Or test me with trivia questions!"

	helpEventsDetail = "For current events, you can ask about:\n- World news\n- Business and finance\n- Science and technology\n- Sports updates\n- Or any recent developments you're curious about"

	helpMoreDetail = "I can also help with:\n- Answering questions\n- Explaining concepts\n- Providing recommendations\n- Offering advice (non-professional)\n- And much more!\n\nFeel free to ask me anything!"
)

// responses is the primary lookup table. Order matters.
var responses = []Entry{
	{
		Keyword:  "top rated movie",
		Response: `The current top-rated movie on IMDb is "The Shawshank Redemption" (1994) with a rating of 9.3/10. For the most current box office hits, I recommend checking the latest charts on IMDb or Rotten Tomatoes.`,
	},
	{
		Keyword:  "latest movie",
		Response: `The latest blockbuster movies include "Dune: Part Two" and "Oppenheimer". For real-time box office information, you can visit websites like Box Office Mojo or IMDb.`,
	},
	{
		Keyword:  "ai trends",
		Response: "Some of the latest AI trends include:\n1. Generative AI and large language models\n2. AI-powered automation\n3. AI in healthcare\n4. Ethical AI and regulations\n5. AI-powered cybersecurity\n\nWould you like more details on any of these trends?",
		FollowUps: []FollowUp{
			{Trigger: "1", Response: genAIDetail},
			{Trigger: "generative ai", Response: genAIDetail},
			{Trigger: "2", Response: automationDetail},
			{Trigger: "ai-powered automation", Response: automationDetail},
			{Trigger: "3", Response: healthcareDetail},
			{Trigger: "ai in healthcare", Response: healthcareDetail},
			{Trigger: "4", Response: ethicsDetail},
			{Trigger: "ethical ai", Response: ethicsDetail},
			{Trigger: "5", Response: securityDetail},
			{Trigger: "ai-powered cybersecurity", Response: securityDetail},
		},
	},
	{
		Keyword:  "ai-powered cybersecurity",
		Response: "AI-powered cybersecurity is transforming how we protect digital assets. Key aspects include:\n\n1. **Threat Detection**: AI analyzes patterns to identify potential threats in real-time.\n2. **Anomaly Detection**: Machine learning identifies unusual behavior that might indicate a security breach.\n3. **Automated Response**: AI can automatically respond to certain types of cyber threats.\n4. **Phishing Detection**: AI helps identify and block phishing attempts.\n5. **Vulnerability Management**: AI can predict and patch vulnerabilities before they are exploited.\n\nWould you like more details on any specific aspect?",
	},
	{
		Keyword:  "generative ai",
		Response: "Generative AI is a type of artificial intelligence that can create new content, such as:\n\n1. **Text Generation**: Creating human-like text (like ChatGPT)\n2. **Image Generation**: Creating realistic images from text descriptions (like DALL-E, Midjourney)\n3. **Code Generation**: Writing and debugging code (like GitHub Copilot)\n4. **Music and Audio**: Composing music or generating voiceovers\n5. **Video Generation**: Creating or editing videos based on prompts\n\nThese models are trained on large datasets and can generate highly realistic outputs across various domains.",
	},
	{
		Keyword:  "help",
		Response: "I can help you with various topics including:\n1. Latest movies and TV shows\n2. Technology trends\n3. General knowledge questions\n4. Current events\n5. And much more!\n\nWhat would you like to know about?",
		FollowUps: []FollowUp{
			{Trigger: "1", Response: helpMoviesDetail},
			{Trigger: "movies", Response: helpMoviesDetail},
			{Trigger: "2", Response: helpTechDetail},
			{Trigger: "technology", Response: helpTechDetail},
			{Trigger: "3", Response: helpKnowledgeDetail},
			{Trigger: "general knowledge", Response: helpKnowledgeDetail},
			{Trigger: "4", Response: helpEventsDetail},
			{Trigger: "current events", Response: helpEventsDetail},
			{Trigger: "5", Response: helpMoreDetail},
			{Trigger: "what else", Response: helpMoreDetail},
		},
	},
	{
		Keyword:  "hello",
		Response: "Hello! I'm your AI assistant. How can I help you today?",
	},
	{
		Keyword:  "hi",
		Response: "Hi there! What would you like to know?",
	},
	{
		Keyword:  "thank you",
		Response: "You're welcome! Is there anything else I can help you with?",
	},
	{
		Keyword:  "bye",
		Response: "Goodbye! Feel free to come back if you have more questions.",
	},
}

// commonQueries is the secondary table scanned when nothing in the primary
// table matched. Time and date answers are computed at resolution time.
var commonQueries = []struct {
	Keyword string
	Answer  func(now time.Time) string
}{
	{
		Keyword: "movie",
		Answer: func(time.Time) string {
			return "For the latest movie information, I recommend checking IMDb or Rotten Tomatoes."
		},
	},
	{
		Keyword: "weather",
		Answer: func(time.Time) string {
			return "I can't check real-time weather, but you can check your local weather service or a weather app for the most accurate forecast."
		},
	},
	{
		Keyword: "news",
		Answer: func(time.Time) string {
			return "For the latest news, I recommend checking reputable news websites like BBC, CNN, or Reuters."
		},
	},
	{
		Keyword: "time",
		Answer: func(now time.Time) string {
			return "The current time is " + now.Format("3:04:05 PM") + "."
		},
	},
	{
		Keyword: "date",
		Answer: func(now time.Time) string {
			return "Today's date is " + now.Format("1/2/2006") + "."
		},
	},
	{
		Keyword: "how are you",
		Answer: func(time.Time) string {
			return "I'm just a computer program, but I'm functioning well! How can I assist you today?"
		},
	},
}

const (
	emptyMessageResponse = "I'm not sure how to respond to that. Could you try asking in a different way?"
	unknownResponse      = "I'm not quite sure I understand. Could you try asking in a different way? I'm here to help!"
)
