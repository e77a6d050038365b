/*
Copyright 2026 The SageMaker Gateway Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package batch

// workerPool bounds the number of batch items processed concurrently.
// The bound is shared; completion tracking stays with each batch so
// concurrent batches never wait on each other.
type workerPool struct {
	sem chan struct{}
}

func newWorkerPool(size int) *workerPool {
	if size < 1 {
		size = 1
	}
	return &workerPool{
		sem: make(chan struct{}, size),
	}
}

// Acquire blocks until a worker slot is free.
func (wp *workerPool) Acquire() {
	wp.sem <- struct{}{}
}

func (wp *workerPool) Release() {
	<-wp.sem
}
