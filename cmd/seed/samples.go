package main

type sampleItem struct {
	title string
	url   string
	tags  []string
}

var sampleItems = []sampleItem{
	{"Understanding React Server Components", "https://react.dev/blog/2023/03/22/react-labs-what-we-have-been-working-on-march-2023", []string{"react", "javascript"}},
	{"A Complete Guide to Flexbox", "https://css-tricks.com/snippets/css/a-guide-to-flexbox/", []string{"css"}},
	{"Node.js Best Practices", "https://github.com/goldbergyoni/nodebestpractices", []string{"nodejs", "javascript"}},
	{"The TypeScript Handbook", "https://www.typescriptlang.org/docs/handbook/intro.html", []string{"typescript"}},
	{"SQL Performance Explained", "https://use-the-index-luke.com/", []string{"database", "performance"}},
	{"OWASP Top 10 Security Risks", "https://owasp.org/www-project-top-ten/", []string{"security"}},
	{"Testing JavaScript Applications", "https://testingjavascript.com/", []string{"testing", "javascript"}},
	{"Clean Architecture for Frontend", "https://blog.cleancoder.com/uncle-bob/2012/08/13/the-clean-architecture.html", []string{"architecture"}},
	{"Introduction to Docker", "https://docs.docker.com/get-started/", []string{"devops"}},
	{"Python Type Hints Explained", "https://realpython.com/python-type-hints/", []string{"python"}},
	{"React Hooks Deep Dive", "https://react.dev/reference/react", []string{"react", "javascript"}},
	{"CSS Grid Complete Guide", "https://css-tricks.com/snippets/css/complete-guide-grid/", []string{"css"}},
	{"Express.js Security Best Practices", "https://expressjs.com/en/advanced/best-practice-security.html", []string{"nodejs", "security"}},
	{"TypeScript Generics Tutorial", "https://www.typescriptlang.org/docs/handbook/2/generics.html", []string{"typescript"}},
	{"PostgreSQL Performance Tuning", "https://wiki.postgresql.org/wiki/Performance_Optimization", []string{"database", "performance"}},
	{"JWT Authentication Best Practices", "https://auth0.com/blog/jwt-authentication-best-practices/", []string{"security", "nodejs"}},
	{"Jest Testing Framework Guide", "https://jestjs.io/docs/getting-started", []string{"testing", "javascript"}},
	{"Domain-Driven Design Basics", "https://martinfowler.com/bliki/DomainDrivenDesign.html", []string{"architecture"}},
	{"Kubernetes for Developers", "https://kubernetes.io/docs/tutorials/", []string{"devops"}},
	{"Python Async/Await Tutorial", "https://realpython.com/async-io-python/", []string{"python"}},
	{"React Performance Optimization", "https://react.dev/learn/render-and-commit", []string{"react", "performance"}},
	{"Modern CSS Features", "https://web.dev/articles/css-nesting", []string{"css"}},
	{"Node.js Streams Explained", "https://nodejs.org/api/stream.html", []string{"nodejs"}},
	{"TypeScript Utility Types", "https://www.typescriptlang.org/docs/handbook/utility-types.html", []string{"typescript"}},
	{"Database Indexing Strategies", "https://use-the-index-luke.com/sql/where-clause", []string{"database"}},
	{"Web Application Security Checklist", "https://owasp.org/www-project-web-security-testing-guide/", []string{"security"}},
	{"End-to-End Testing with Playwright", "https://playwright.dev/docs/intro", []string{"testing"}},
	{"Microservices Architecture Patterns", "https://microservices.io/patterns/", []string{"architecture", "devops"}},
	{"CI/CD Pipeline Best Practices", "https://www.atlassian.com/continuous-delivery/principles/continuous-integration-vs-delivery-vs-deployment", []string{"devops"}},
	{"Python Virtual Environments", "https://docs.python.org/3/library/venv.html", []string{"python"}},
	{"React State Management Patterns", "https://react.dev/learn/managing-state", []string{"react", "architecture"}},
	{"CSS Custom Properties Guide", "https://developer.mozilla.org/en-US/docs/Web/CSS/Using_CSS_custom_properties", []string{"css"}},
	{"Node.js Error Handling", "https://nodejs.org/api/errors.html", []string{"nodejs"}},
	{"TypeScript Decorators", "https://www.typescriptlang.org/docs/handbook/decorators.html", []string{"typescript"}},
	{"SQLite Performance Tips", "https://www.sqlite.org/np1queryprob.html", []string{"database", "performance"}},
	{"API Security Guidelines", "https://cheatsheetseries.owasp.org/cheatsheets/REST_Security_Cheat_Sheet.html", []string{"security", "architecture"}},
	{"React Testing Library Guide", "https://testing-library.com/docs/react-testing-library/intro/", []string{"testing", "react"}},
	{"Event-Driven Architecture", "https://martinfowler.com/articles/201701-event-driven.html", []string{"architecture"}},
	{"GitHub Actions Tutorial", "https://docs.github.com/en/actions/quickstart", []string{"devops"}},
	{"Python Decorators Explained", "https://realpython.com/primer-on-python-decorators/", []string{"python"}},
}
