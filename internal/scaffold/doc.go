// Package scaffold generates new TypeScript library projects and the GitHub
// workflow files of existing ones. It powers "frontpl init" and "frontpl ci".
package scaffold
